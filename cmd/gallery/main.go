package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"gallery-go/internal/app"
	"gallery-go/internal/config"
	"gallery-go/internal/gallery"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// loadConfig reads the config file named by the defaults.
func loadConfig() (*config.Config, map[string]string, error) {
	defaults, err := app.GetDefaults()
	if err != nil {
		return nil, nil, fmt.Errorf("getting defaults: %w", err)
	}

	cfg, err := config.ReadFromFile(defaults["config_path"])
	if err != nil {
		return nil, nil, fmt.Errorf("reading config: %w", err)
	}
	return cfg, defaults, nil
}

// newApp reads the config and creates a GalleryApp. The caller must defer a.Close().
// operation identifies the CLI command being run (e.g. "AddWebsite", "Move").
func newApp(ctx context.Context, operation string, opts ...app.Option) (*app.GalleryApp, error) {
	cfg, _, err := loadConfig()
	if err != nil {
		return nil, err
	}

	opts = append([]app.Option{app.WithPassphrase(promptPassphrase)}, opts...)
	a, err := app.NewGalleryApp(ctx, cfg, operation, opts...)
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}
	return a, nil
}

// promptPassphrase reads a passphrase from the terminal without echo.
func promptPassphrase() (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", fmt.Errorf("stdin is not a terminal; set %s", app.PassphraseEnv)
	}
	fmt.Fprint(os.Stderr, "Passphrase: ")
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

var rootCmd = &cobra.Command{
	Use:          "gallery",
	Short:        "Personal media gallery",
	SilenceUsage: true,
}

// config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		hostID := uuid.New().String()
		cfg := config.NewConfig(hostID, defaults["base_dir"])

		if err := config.Init(defaults["config_path"], cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		fmt.Printf("Configuration initialized at %s\n", defaults["config_path"])
		fmt.Printf("Host ID:  %s\n", hostID)
		fmt.Printf("Base Dir: %s\n", defaults["base_dir"])
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, defaults, err := loadConfig()
		if err != nil {
			return err
		}

		fmt.Printf("Configuration from %s:\n\n", defaults["config_path"])
		fmt.Printf("Host ID:     %s\n", cfg.HostID)
		fmt.Printf("Base Dir:    %s\n", cfg.BaseDir)
		fmt.Printf("Log Dir:     %s\n", cfg.LogDir)
		fmt.Printf("Log Level:   %s\n", cfg.LogLevel)
		fmt.Printf("Storage:     %s\n", describeStorage(cfg.Storage))
		fmt.Printf("Encryption:  %s\n", cfg.Encryption.Type)
		fmt.Printf("Column Width: %g\n", cfg.Layout.ColumnWidth)
		return nil
	},
}

func describeStorage(s config.StorageConfig) string {
	switch s.Type {
	case "filesystem":
		return "filesystem " + s.FSRoot
	case "sqlite":
		return "sqlite " + s.DataDir
	case "redis":
		return "redis " + s.RedisAddr
	case "s3":
		return "s3 s3://" + s.S3Bucket + "/" + s.S3Prefix
	default:
		return s.Type
	}
}

var configKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Manage encryption keys",
}

var configKeysInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate an age key pair protected by a passphrase",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfig()
		if err != nil {
			return err
		}

		passphrase, err := promptPassphrase()
		if err != nil {
			return fmt.Errorf("reading passphrase: %w", err)
		}
		fmt.Fprint(os.Stderr, "Confirm ")
		confirm, err := promptPassphrase()
		if err != nil {
			return fmt.Errorf("reading passphrase: %w", err)
		}
		if passphrase != confirm {
			return fmt.Errorf("passphrases do not match")
		}

		if err := app.SetupKeys(cfg, passphrase); err != nil {
			return err
		}
		fmt.Printf("Keys written to %s and %s\n", cfg.Encryption.PublicKeyPath, cfg.Encryption.PrivateKeyPath)
		return nil
	},
}

// list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the gallery grid",
	RunE: func(cmd *cobra.Command, args []string) error {
		width, _ := cmd.Flags().GetFloat64("width")

		a, err := newApp(cmd.Context(), "List")
		if err != nil {
			return err
		}
		defer a.Close()

		cells := a.Grid(width)
		if len(cells) == 0 {
			fmt.Println("No media yet.")
			return nil
		}

		for _, c := range cells {
			fmt.Printf("%3d  col%d  %-36s  %-11s  %7.1f  %s\n",
				c.Index,
				c.Column,
				c.Entry.ID,
				c.Entry.Kind,
				c.Height,
				c.Entry.URI,
			)
		}
		return nil
	},
}

// add command
var addCmd = &cobra.Command{
	Use:   "add FILE...",
	Short: "Pick photos and videos from files or directories",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		rotation, _ := cmd.Flags().GetInt("rotation")

		a, err := newApp(cmd.Context(), "AddMedia",
			app.WithPaths(args...),
			app.WithAssumeConsent(yes),
			app.WithRotation(rotation),
		)
		if err != nil {
			return err
		}
		defer a.Close()

		n, err := a.AddMedia(cmd.Context())
		if errors.Is(err, gallery.ErrPermissionDenied) {
			fmt.Println("Permission required: allow library and camera access to add media.")
			return err
		}
		if err != nil {
			return fmt.Errorf("adding media: %w", err)
		}

		if n == 0 {
			fmt.Println("Nothing added.")
			return nil
		}
		fmt.Printf("Added %d item(s)\n", n)
		return nil
	},
}

// website command
var websiteCmd = &cobra.Command{
	Use:   "website URL",
	Short: "Add a website to the gallery",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), "AddWebsite")
		if err != nil {
			return err
		}
		defer a.Close()

		e, err := a.AddWebsite(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Added %s  %s\n", e.ID, e.URI)
		return nil
	},
}

// rm command
var rmCmd = &cobra.Command{
	Use:   "rm ID",
	Short: "Remove an item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), "Remove")
		if err != nil {
			return err
		}
		defer a.Close()

		if !a.Remove(cmd.Context(), args[0]) {
			fmt.Printf("No item with id %s\n", args[0])
			return nil
		}
		fmt.Printf("Removed %s\n", args[0])
		return nil
	},
}

// mv command
var mvCmd = &cobra.Command{
	Use:   "mv ID INDEX",
	Short: "Move an item to a new position",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), "Move")
		if err != nil {
			return err
		}
		defer a.Close()

		index, err := a.Move(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		if index < 0 {
			fmt.Printf("No item with id %s\n", args[0])
			return nil
		}
		fmt.Printf("Moved %s to position %d of %d\n", args[0], index, len(a.Items()))
		return nil
	},
}

// open command
var openCmd = &cobra.Command{
	Use:   "open ID",
	Short: "Open an item fullscreen, or a website in the browser",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rotate, _ := cmd.Flags().GetBool("rotate")
		printOnly, _ := cmd.Flags().GetBool("print")

		a, err := newApp(cmd.Context(), "Open", app.WithPrintPages(printOnly))
		if err != nil {
			return err
		}
		defer a.Close()

		v, err := a.Open(cmd.Context(), args[0], rotate)
		if err != nil {
			return err
		}

		if v.Mode == gallery.ModeWebsite {
			return nil
		}

		e := v.Entry
		playback := "still"
		if e.Kind.IsVideo() {
			playback = "video, playing"
		}
		w, h := e.Width, e.Height
		if v.Rotated {
			w, h = h, w
		}
		fmt.Printf("%s\n", e.URI)
		fmt.Printf("  kind:     %s (%s)\n", e.Kind, playback)
		fmt.Printf("  size:     %dx%d\n", w, h)
		fmt.Printf("  rotation: %d\n", e.Rotation)
		if v.Rotated {
			fmt.Println("  view:     rotated a quarter turn")
		}
		return nil
	},
}

func init() {
	// config subcommands
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configKeysCmd)
	configKeysCmd.AddCommand(configKeysInitCmd)

	// root commands
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().Float64P("width", "w", 0, "Column width (default from config)")
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().BoolP("yes", "y", false, "Grant library and camera access without prompting")
	addCmd.Flags().IntP("rotation", "r", 0, "Rotation in degrees recorded on every added item")
	rootCmd.AddCommand(websiteCmd)
	rootCmd.AddCommand(rmCmd)
	rootCmd.AddCommand(mvCmd)
	rootCmd.AddCommand(openCmd)
	openCmd.Flags().Bool("rotate", false, "Rotate the view a quarter turn")
	openCmd.Flags().Bool("print", false, "Print website addresses instead of opening a browser")
}
