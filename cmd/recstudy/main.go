// Recstudy - News Recommendation Expert Study
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recstudy

// Command recstudy inspects and exports the feedback collected by the study
// server. It reads the same configuration as the server.
//
//	recstudy export --out feedback.jsonl
//	recstudy stats --json
package main

import (
	"fmt"
	"os"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
