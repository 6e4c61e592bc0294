package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/watermelon/decision-engine/pkg/tlsutil"
)

func certsCmd() *cobra.Command {
	var (
		hosts      []string
		clientName string
		outDir     string
	)

	cmd := &cobra.Command{
		Use:   "certs",
		Short: "Generate a development CA with gRPC server and client certificates",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := tlsutil.GenerateDevCertificates(hosts, clientName, outDir); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s, %s, %s and keys to %s\n",
				tlsutil.CAFile, tlsutil.ServerFile, tlsutil.ClientFile, outDir)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&hosts, "hosts", []string{"localhost", "127.0.0.1"}, "Server certificate hosts")
	cmd.Flags().StringVar(&clientName, "client-name", "enginectl", "Client certificate common name")
	cmd.Flags().StringVarP(&outDir, "out", "o", "certs", "Output directory")

	return cmd
}
