// Package config provides the settings of a critic session.
//
// Settings are assembled in layers, higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  4. Environment Variables   │  ← CRITIC_*, highest priority
//	├─────────────────────────────┤
//	│  3. YAML settings           │  ← critic.yaml
//	├─────────────────────────────┤
//	│  2. TOML settings           │  ← critic.toml
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// Files supplied to Load are merged in the order given, so the usual
// ordering above only holds when DefaultPaths is used.
//
// # Format
//
//	author = "amy"
//	label = "draft"
//	timestamps = true
//
//	[log]
//	level = "info"
//
//	[kinds.highlight]
//	movement = "skip-entire"
//	bracket = "stay-inside"
//	edit = "split"
//
//	[merge]
//	author = "split"
//	time = "prefer-new"
//	label = "move-outside"
//
// Kind names are addition, deletion, substitution, highlight and comment.
// Values are the names printed by the policy package.
//
// # Sub-packages
//
//   - loader: settings file loading (TOML, YAML, environment variables)
//   - watcher: reloads a settings file when it changes on disk
package config
