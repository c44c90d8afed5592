package cmd

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/openfaas/faas-provider/types"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/openfaas/startorder/pkg/config"
	"github.com/openfaas/startorder/pkg/handlers"
)

func makeServeCmd() *cobra.Command {
	var command = &cobra.Command{
		Use:   "serve",
		Short: "Serve the start order over HTTP",
		Long: `Serve the start order of a compose file over HTTP. The file is read again
on every request.

  GET /system/info
  GET /order
  GET /dependencies/{name}
`,
		RunE: runServeE,
	}

	configureComposeFlags(command.Flags())
	command.Flags().IntP("port", "p", 0, fmt.Sprintf("TCP port to listen on, defaults to $port or %d", config.DefaultPort))

	return command
}

func runServeE(cmd *cobra.Command, _ []string) error {
	composeCfg, err := parseComposeFlags(cmd)
	if err != nil {
		return err
	}

	envConfig, err := config.ReadFromEnv(types.OsEnv{})
	if err != nil {
		return errors.Wrap(err, "can not read configuration from the environment")
	}

	port, _ := cmd.Flags().GetInt("port")
	if port == 0 {
		port = envConfig.Port
	}

	log.Printf("startorder starting..\tVersion: %s\tCommit: %s\tService Timeout: %s\n", GetVersion(), GitCommit, envConfig.WriteTimeout.String())

	router := makeRouter(composeCfg.loadDescriptors)

	s := &http.Server{
		Addr:           fmt.Sprintf(":%d", port),
		Handler:        router,
		ReadTimeout:    envConfig.ReadTimeout,
		WriteTimeout:   envConfig.WriteTimeout,
		MaxHeaderBytes: http.DefaultMaxHeaderBytes,
	}

	log.Printf("Listening on TCP port: %d\n", port)
	return s.ListenAndServe()
}

func makeRouter(load handlers.DescriptorLoader) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/system/info", handlers.MakeInfoHandler(GetVersion(), GitCommit)).Methods(http.MethodGet)
	r.HandleFunc("/order", handlers.MakeOrderHandler(load)).Methods(http.MethodGet)
	r.HandleFunc("/dependencies/{name}", handlers.MakeDependenciesHandler(load)).Methods(http.MethodGet)

	return r
}
