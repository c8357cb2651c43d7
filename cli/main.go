/*-------------------------------------------------------------------------
 *
 * main.go
 *    Main entry point for inheritx-cli
 *
 * Copyright (c) 2024-2026, Skill Mind, Inc. <support@inheritx.io>
 *
 * IDENTIFICATION
 *    InheritX-Backend/cli/main.go
 *
 *-------------------------------------------------------------------------
 */

package main

import (
	"github.com/skill-mind/InheritX-Backend/cli/cmd"
)

func main() {
	cmd.Execute()
}
