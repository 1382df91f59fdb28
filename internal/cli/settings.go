package cli

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/streakbadge-io/streakbadge/internal/config"
	"github.com/streakbadge-io/streakbadge/internal/models"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change badge settings",
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current settings",
	RunE:  runSettingsShow,
}

var settingsConfigureCmd = &cobra.Command{
	Use:     "configure",
	Aliases: []string{"config"},
	Short:   "Configure badge settings interactively",
	Long: `Configure badge settings interactively.

This allows you to modify:
  - osu! API credentials (client ID, client secret, username)
  - Badge scale (100-500%)
  - Template, stacking, logging and autostart preferences

Press Enter to keep the current value for any setting.`,
	RunE: runSettingsConfigure,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsConfigureCmd)
}

func runSettingsShow(cmd *cobra.Command, args []string) error {
	store, err := config.DefaultStore()
	if err != nil {
		return err
	}
	st := store.Load()

	secret := "(not set)"
	if st.Credentials.ClientSecret != "" {
		secret = strings.Repeat("*", 8)
	}

	fmt.Println(styleBrand.Render("StreakBadge settings"))
	fmt.Printf("  %s %s\n", styleLabel.Render("File:         "), styleHint.Render(store.Path()))
	fmt.Printf("  %s %s\n", styleLabel.Render("Position:     "), styleValue.Render(fmt.Sprintf("%d, %d", st.Position.X, st.Position.Y)))
	fmt.Printf("  %s %s\n", styleLabel.Render("Scale:        "), styleValue.Render(fmt.Sprintf("%d%%", st.ScalePercent)))
	fmt.Printf("  %s %s\n", styleLabel.Render("Alt template: "), renderBool(st.UseAlternateTemplate))
	fmt.Printf("  %s %s\n", styleLabel.Render("Always on top:"), renderBool(st.AlwaysOnTop))
	fmt.Printf("  %s %s\n", styleLabel.Render("Logging:      "), renderBool(st.LoggingEnabled))
	fmt.Printf("  %s %s\n", styleLabel.Render("Autostart:    "), renderBool(st.Autostart))
	fmt.Printf("  %s %s\n", styleLabel.Render("Client ID:    "), styleValue.Render(orUnset(st.Credentials.ClientID)))
	fmt.Printf("  %s %s\n", styleLabel.Render("Client secret:"), styleValue.Render(secret))
	fmt.Printf("  %s %s\n", styleLabel.Render("Username:     "), styleValue.Render(orUnset(st.Credentials.Username)))

	if !st.Credentials.Complete() {
		fmt.Println()
		fmt.Println(styleHint.Render("Credentials are incomplete; the badge will show no streak."))
		fmt.Println(styleHint.Render("Run 'streakbadge settings configure' to set them."))
	}
	return nil
}

func runSettingsConfigure(cmd *cobra.Command, args []string) error {
	store, err := config.DefaultStore()
	if err != nil {
		return err
	}
	st := store.Load()

	reader := bufio.NewReader(os.Stdin)
	changed := false

	fmt.Println("osu! API credentials (https://osu.ppy.sh/home/account/edit#oauth):")

	if v := promptString(reader, "  Client ID", st.Credentials.ClientID); v != st.Credentials.ClientID {
		st.Credentials.ClientID = v
		changed = true
	}
	if v := promptSecret(reader, "  Client secret", st.Credentials.ClientSecret); v != st.Credentials.ClientSecret {
		st.Credentials.ClientSecret = v
		changed = true
	}
	if v := promptString(reader, "  Username", st.Credentials.Username); v != st.Credentials.Username {
		st.Credentials.Username = v
		changed = true
	}

	fmt.Printf("\nBadge scale (%d-%d%%) [%d]: ", models.MinScalePercent, models.MaxScalePercent, st.ScalePercent)
	if line := readLine(reader); line != "" {
		pct, err := strconv.Atoi(line)
		if err != nil {
			return fmt.Errorf("invalid scale: %s", line)
		}
		pct = models.ClampScale(pct)
		if pct != st.ScalePercent {
			st.ScalePercent = pct
			changed = true
		}
	}

	fmt.Println("\nPreferences:")
	if v := promptYesNoWithCurrent(reader, "Use alternative template?", st.UseAlternateTemplate); v != st.UseAlternateTemplate {
		st.UseAlternateTemplate = v
		changed = true
	}
	if v := promptYesNoWithCurrent(reader, "Keep badge always on top?", st.AlwaysOnTop); v != st.AlwaysOnTop {
		st.AlwaysOnTop = v
		changed = true
	}
	if v := promptYesNoWithCurrent(reader, "Enable diagnostic logging?", st.LoggingEnabled); v != st.LoggingEnabled {
		st.LoggingEnabled = v
		changed = true
	}
	if v := promptYesNoWithCurrent(reader, "Start at login?", st.Autostart); v != st.Autostart {
		st.Autostart = v
		changed = true
	}

	if !changed {
		fmt.Println("\nNo changes made.")
		return nil
	}

	if err := store.Save(st); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	fmt.Println("\n" + styleSuccess.Render("Settings updated."))
	fmt.Println(styleHint.Render("A running badge picks the changes up automatically."))
	return nil
}

func promptString(reader *bufio.Reader, label, current string) string {
	fmt.Printf("%s [%s]: ", label, orUnset(current))
	if line := readLine(reader); line != "" {
		return line
	}
	return current
}

// promptSecret never echoes the current value.
func promptSecret(reader *bufio.Reader, label, current string) string {
	shown := "(not set)"
	if current != "" {
		shown = "********"
	}
	fmt.Printf("%s [%s]: ", label, shown)
	if line := readLine(reader); line != "" {
		return line
	}
	return current
}

// promptYesNoWithCurrent prompts for a yes/no value showing the current value.
func promptYesNoWithCurrent(reader *bufio.Reader, prompt string, current bool) bool {
	currentStr := "no"
	if current {
		currentStr = "yes"
	}

	fmt.Printf("  %s [%s]: ", prompt, currentStr)
	response := strings.ToLower(readLine(reader))

	if response == "" {
		return current
	}
	return response == "y" || response == "yes"
}

func readLine(reader *bufio.Reader) string {
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}

func orUnset(v string) string {
	if v == "" {
		return "(not set)"
	}
	return v
}

func renderBool(v bool) string {
	if v {
		return styleSuccess.Render("on")
	}
	return styleHint.Render("off")
}
