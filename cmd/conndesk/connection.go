package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/tomyedwab/conndesk/applib"
	conndeskgo "github.com/tomyedwab/conndesk/clients/go"
)

const envServer = "CONNDESK_SERVER"

func defaultServerURL() string {
	if url := os.Getenv(envServer); url != "" {
		return url
	}
	return fmt.Sprintf("http://%s:%d", applib.DefaultHost, applib.DefaultPort)
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid connection id %q", arg)
	}
	return id, nil
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func connectionCmd() *cobra.Command {
	var serverURL string

	cmd := &cobra.Command{
		Use:     "connection",
		Aliases: []string{"conn"},
		Short:   "Manage saved connections on a running server",
	}
	cmd.PersistentFlags().StringVar(&serverURL, "server", defaultServerURL(), "Base URL of the conndesk server (env "+envServer+")")

	client := func() *conndeskgo.Client {
		return conndeskgo.NewClient(serverURL)
	}

	var uri, name, color string
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Save a new connection and print its id",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := client().CreateConnection(context.Background(), uri, name, color)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}
	createCmd.Flags().StringVar(&uri, "uri", "", "Connection URI")
	createCmd.Flags().StringVar(&name, "name", "", "Display name")
	createCmd.Flags().StringVar(&color, "color", "", "Display color")
	createCmd.MarkFlagRequired("uri")

	getCmd := &cobra.Command{
		Use:   "get ID",
		Short: "Print a connection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			conn, err := client().GetConnection(context.Background(), id)
			if err != nil {
				return err
			}
			if conn == nil {
				return fmt.Errorf("connection %d not found", id)
			}
			return printJSON(cmd.OutOrStdout(), conn)
		},
	}

	var updURI, updName, updColor string
	updateCmd := &cobra.Command{
		Use:   "update ID",
		Short: "Replace every field of a connection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return client().UpdateConnection(context.Background(), conndeskgo.Connection{
				ID:    id,
				URI:   updURI,
				Name:  updName,
				Color: updColor,
			})
		},
	}
	updateCmd.Flags().StringVar(&updURI, "uri", "", "Connection URI")
	updateCmd.Flags().StringVar(&updName, "name", "", "Display name")
	updateCmd.Flags().StringVar(&updColor, "color", "", "Display color")
	updateCmd.MarkFlagRequired("uri")

	deleteCmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a connection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return client().DeleteConnection(context.Background(), id)
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Print every saved connection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			conns, err := client().ListConnections(context.Background())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), conns)
		},
	}

	cmd.AddCommand(createCmd, getCmd, updateCmd, deleteCmd, listCmd)
	return cmd
}
