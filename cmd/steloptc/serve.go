package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/jnowat/SteloPTC/internal/commands"
	"github.com/jnowat/SteloPTC/internal/util"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the JSON command loop on stdin/stdout",
	Long: `Serve reads one JSON request per line on stdin and writes one JSON
response per line on stdout. The desktop UI talks to this loop.

Request:  {"id": ..., "command": "...", "token": "...", "payload": {...}}
Response: {"id": ..., "ok": true, "result": ...}
          {"id": ..., "ok": false, "error": "..."}

Logs go to stderr so stdout stays a clean response stream.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

type request struct {
	ID      json.RawMessage `json:"id"`
	Command string          `json:"command"`
	Token   string          `json:"token"`
	Payload json.RawMessage `json:"payload"`
}

type response struct {
	ID     json.RawMessage `json:"id"`
	OK     bool            `json:"ok"`
	Result any             `json:"result,omitempty"`
	Error  string          `json:"error,omitempty"`
}

func runServe(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.Seed(); err != nil {
		return fmt.Errorf("failed to seed defaults: %w", err)
	}

	app := commands.NewApp(db)

	util.InfoLog("Serving %d commands on stdin (db: %s)", len(commands.Commands()), db.Path())

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 64*1024), 4*1024*1024)
	encoder := json.NewEncoder(os.Stdout)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req request
		if err := json.Unmarshal(line, &req); err != nil {
			encoder.Encode(response{OK: false, Error: "malformed request: " + err.Error()})
			continue
		}

		result, err := app.Dispatch(req.Command, req.Token, req.Payload)
		if err != nil {
			util.DebugLog("%s failed: %v", req.Command, err)
			encoder.Encode(response{ID: req.ID, OK: false, Error: err.Error()})
			continue
		}
		if err := encoder.Encode(response{ID: req.ID, OK: true, Result: result}); err != nil {
			return fmt.Errorf("failed to write response: %w", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read requests: %w", err)
	}

	util.InfoLog("Input closed, shutting down")
	return nil
}
