package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
)

// Config holds persistent CLI preferences read from config.toml.
// Zero values mean "use the pipeline defaults".
type Config struct {
	// Default atlas and cell sizes in texels.
	TextureW int `toml:"texture_w"`
	TextureH int `toml:"texture_h"`
	CellW    int `toml:"cell_w"`
	CellH    int `toml:"cell_h"`

	// CacheBackend selects the cache: "file" (default), "redis", or "mongo".
	CacheBackend string `toml:"cache_backend"`
	// CacheURL is the connection URL for the redis or mongo backends.
	CacheURL string `toml:"cache_url"`
}

// configPath returns the config file path using XDG standard
// (~/.config/brickuv/config.toml).
func configPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// LoadConfig reads the config file. A missing or unreadable file yields the
// zero config; commands fall back to pipeline defaults.
func LoadConfig() Config {
	var cfg Config
	path, err := configPath()
	if err != nil {
		return cfg
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}
	}
	return cfg
}

// Save writes the config to the config file, creating the directory if needed.
func (cfg Config) Save() error {
	path, err := configPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(cfg)
}

// configCommand creates the config management command.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage persistent CLI preferences",
	}

	cmd.AddCommand(c.configShowCommand())
	cmd.AddCommand(c.configPathCommand())
	cmd.AddCommand(c.configInitCommand())

	return cmd
}

// configShowCommand creates the "config show" subcommand.
func (c *CLI) configShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.pipelineOptions()
			printKeyValue("texture", fmt.Sprintf("%dx%d", opts.TextureW, opts.TextureH))
			printKeyValue("cell", fmt.Sprintf("%dx%d", opts.CellW, opts.CellH))
			backend := c.Config.CacheBackend
			if backend == "" {
				backend = "file"
			}
			printKeyValue("cache", backend)
			if c.Config.CacheURL != "" {
				printKeyValue("cache url", c.Config.CacheURL)
			}
			return nil
		},
	}
}

// configPathCommand creates the "config path" subcommand.
func (c *CLI) configPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := configPath()
			if err != nil {
				return fmt.Errorf("get config path: %w", err)
			}
			fmt.Println(path)
			return nil
		},
	}
}

// configInitCommand creates the "config init" subcommand.
func (c *CLI) configInitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the current defaults",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := configPath()
			if err != nil {
				return fmt.Errorf("get config path: %w", err)
			}
			if _, err := os.Stat(path); err == nil {
				printWarning("Config already exists at %s", path)
				return nil
			}

			opts := c.pipelineOptions()
			cfg := Config{
				TextureW:     opts.TextureW,
				TextureH:     opts.TextureH,
				CellW:        opts.CellW,
				CellH:        opts.CellH,
				CacheBackend: "file",
			}
			if err := cfg.Save(); err != nil {
				return fmt.Errorf("write config: %w", err)
			}
			printSuccess("Wrote %s", path)
			return nil
		},
	}
}
