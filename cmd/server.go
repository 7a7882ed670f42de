package cmd

import (
	"encoding/json"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/modbound/modbound/internal/check"
)

var serverAddr string

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Serve check results over HTTP for editor/CI integrations",
	RunE:  runServer,
}

func init() {
	serverCmd.Flags().StringVar(&serverAddr, "addr", "127.0.0.1:7463", "address to listen on")
	rootCmd.AddCommand(serverCmd)
}

func runServer(cmd *cobra.Command, _ []string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/check", func(w http.ResponseWriter, r *http.Request) {
		cfg, projectRoot, err := loadProjectConfig()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		c := check.NewChecker(projectRoot, cfg)
		res, err := c.Run(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(res.Diagnostics)
	})

	cmd.Println("listening on", serverAddr)
	srv := &http.Server{Addr: serverAddr, Handler: mux}
	return srv.ListenAndServe()
}
