// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for the select
// viewer.
//
// Configuration is loaded from a single file named by either the
// BUREAU_SELECT_CONFIG environment variable (via [Load]) or a --config
// flag (via [LoadFile]). There is no automatic file search. Command
// line flags override individual values after loading.
//
// Variable expansion is performed on path fields after loading:
// ${HOME}, ${CONFIG_DIR}, and ${VAR:-default} patterns are expanded.
//
// Key exports:
//
//   - [Config] -- definition path, state file, logging, box width, theme
//   - [Default] -- the configuration used when no file is given
//   - [Load] and [LoadFile] -- the two entry points for loading
package config
