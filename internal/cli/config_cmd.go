// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config_cmd.go - config show, path and init.

package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/shopfront-tui/internal/config"
)

const maskedSecret = "********"

// HandleConfig dispatches the config subcommands. No subcommand means show.
func HandleConfig(_ context.Context, env *Env) error {
	p := NewArgParser(env.Args.Raw, "force")
	switch sub := p.Subcommand(); sub {
	case "", "show":
		return configShow(env)
	case "path":
		return env.emit(CmdConfig, map[string]string{"path": env.ConfigPath}, func() {
			fmt.Fprintln(env.Out, env.ConfigPath)
		})
	case "init":
		return configInit(env, p.BoolFlag("force"))
	default:
		return unknownSubcommand("config", sub)
	}
}

// configShow prints the effective config with the JWT secret masked.
func configShow(env *Env) error {
	cfg := *env.Config
	if cfg.Server.JWTSecret != "" {
		cfg.Server.JWTSecret = maskedSecret
	}
	if env.Args.JSON {
		return NewJSONResponse(CmdConfig.String(), cfg).Write(env.Out)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# %s\n", env.ConfigPath)
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return writeHighlighted(env.Out, buf.String(), "toml")
}

// configInit writes the default config, refusing to overwrite without
// --force.
func configInit(env *Env, force bool) error {
	if _, err := os.Stat(env.ConfigPath); err == nil && !force {
		return &ValidationError{
			Field:   "config file",
			Value:   env.ConfigPath,
			Reason:  "already exists",
			Example: "shopfront config init --force",
		}
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	if err := config.Save(config.Default(), env.ConfigPath); err != nil {
		return err
	}
	return env.emit(CmdConfig, map[string]string{"path": env.ConfigPath}, func() {
		fmt.Fprintf(env.Out, "%s Wrote %s\n", SuccessStyle.Render("OK"), env.ConfigPath)
	})
}
