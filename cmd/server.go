/*
Copyright © 2021 Edmond Cotterell

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"strings"

	devConfig "github.com/Daskott/agenda/dev/config"
	"github.com/Daskott/agenda/server"
	"github.com/Daskott/agenda/shared"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func createServerCmd() *cobra.Command {
	var serverConfigFile string

	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the agenda web server",
		Long: `Serves the contacts and expenses pages.

Use --sconfig to point at a YAML config file, or --dev to use the built-in
development config (sqlite database under ./dev).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadServerConfig(serverConfigFile, isDevEnv)
			if err != nil {
				return err
			}

			server.Start(*config, isDevEnv)
			return nil
		},
	}

	cmd.Flags().StringVar(&serverConfigFile, "sconfig", "", "Config for server")

	return cmd
}

// loadServerConfig reads the server config from configFile, or from the
// development config when devMode is set and no file is given. Env vars
// override file values, e.g. DATABASE_POSTGRES_DSN.
func loadServerConfig(configFile string, devMode bool) (*shared.ServerConfig, error) {
	config := viper.New()
	config.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	config.AutomaticEnv()

	switch {
	case configFile != "":
		config.SetConfigFile(configFile)
		if err := config.ReadInConfig(); err != nil {
			return nil, formattedError("error reading server config file: %v", err)
		}
	case devMode:
		config.SetConfigType("yaml")
		if err := config.ReadConfig(strings.NewReader(devConfig.SERVER_YML)); err != nil {
			return nil, formattedError("error reading dev server config: %v", err)
		}
	default:
		return nil, formattedError("%v \"sconfig\" not set, use --sconfig <file> or --dev", warningLabel)
	}

	serverConfig := shared.ServerConfig{}
	if err := config.Unmarshal(&serverConfig); err != nil {
		return nil, formattedError("error decoding server config: %v", err)
	}

	return &serverConfig, nil
}
