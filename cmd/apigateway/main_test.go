package main

import (
	"flag"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name     string
		env      string
		args     []string
		wantPort string
	}{
		{name: "default port", args: []string{"cmd"}, wantPort: "8080"},
		{name: "env port", env: "7001", args: []string{"cmd"}, wantPort: "7001"},
		{name: "flag port", args: []string{"cmd", "-p=7002"}, wantPort: "7002"},
		{name: "flag overrides env", env: "7003", args: []string{"cmd", "-p", "7004"}, wantPort: "7004"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oldArgs := os.Args
			oldFlags := flag.CommandLine
			defer func() {
				os.Args = oldArgs
				flag.CommandLine = oldFlags
			}()

			t.Setenv("PORT", tt.env)
			os.Args = tt.args
			flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ExitOnError)

			config, err := loadConfig()
			require.NoError(t, err)
			require.Equal(t, tt.wantPort, config.Port)
		})
	}
}
