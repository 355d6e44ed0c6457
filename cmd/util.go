package cmd

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/aristide1997/version-vault/pkg/client"
)

// appToken is the bearer token used by client commands on secure apps.
var appToken string

func getClient() (*client.Client, error) {
	// we need the user to provide some server address first
	server := viper.GetString(ServerAddrKey)
	if server == "" {
		return nil, fmt.Errorf("server address not configured, provide via --server or env")
	}

	var opts []client.Option
	if appToken != "" {
		opts = append(opts, client.WithAuthToken(appToken))
	}
	return client.New(server, opts...), nil
}
