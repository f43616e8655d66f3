package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type Dependency int

const (
	loggerKey Dependency = iota
	viperKey
)

func RegisterLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

func GetLogger(cmd *cobra.Command) *zap.Logger {
	ctx := cmd.Context()
	if logger, ok := ctx.Value(loggerKey).(*zap.Logger); ok {
		return logger
	}
	return zap.NewNop()
}

func RegisterViper(ctx context.Context, v *viper.Viper) context.Context {
	return context.WithValue(ctx, viperKey, v)
}

func GetViper(cmd *cobra.Command) *viper.Viper {
	ctx := cmd.Context()
	return ctx.Value(viperKey).(*viper.Viper)
}
