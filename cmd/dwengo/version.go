package main

import (
	"encoding/json"
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/SELab-2/Dwengo-4-sub000"
	httpAdapter "github.com/SELab-2/Dwengo-4-sub000/pkg/adapters/http"
)

type versionInfo struct {
	Version    string `json:"version"`
	APIVersion string `json:"api_version"`
	Go         string `json:"go"`
}

func currentVersion() versionInfo {
	v := versionInfo{
		Version:    strings.TrimSpace(dwengo.Version),
		APIVersion: "unknown",
		Go:         runtime.Version(),
	}
	if swagger, err := httpAdapter.GetSwagger(); err == nil && swagger.Info != nil {
		v.APIVersion = swagger.Info.Version
	}
	return v
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the editor and API versions",
	RunE: func(cmd *cobra.Command, args []string) error {
		v := currentVersion()
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return json.NewEncoder(cmd.OutOrStdout()).Encode(v)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "dwengo %s (api %s, %s)\n", v.Version, v.APIVersion, v.Go)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().Bool("json", false, "Print the versions as JSON")
}
