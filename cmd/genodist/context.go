package main

import (
	"context"

	"github.com/spf13/viper"
)

type viperKey struct{}

func withViper(ctx context.Context, v *viper.Viper) context.Context {
	return context.WithValue(ctx, viperKey{}, v)
}

// viperFrom returns the viper instance bound for this invocation, or a
// fresh empty one if PersistentPreRunE somehow didn't run (cobra unit
// tests invoking a subcommand's RunE directly, for instance).
func viperFrom(ctx context.Context) *viper.Viper {
	if v, ok := ctx.Value(viperKey{}).(*viper.Viper); ok {
		return v
	}
	return viper.New()
}
