package cmd

import (
	"crypto/md5"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/arcanaland/battlemancer/internal/ansi"
	"github.com/arcanaland/battlemancer/internal/card"
	"github.com/arcanaland/battlemancer/internal/config"
	"github.com/arcanaland/battlemancer/internal/fetch"
)

const (
	artWidth  = 24
	artHeight = 16
)

// battleCmd represents the battle command
var battleCmd = &cobra.Command{
	Use:   "battle",
	Short: "Draw two random cards and battle them",
	Long: `Battle draws two randomly selected cards and compares their hit points.

Cards come from the Pokémon TCG API when it is reachable. After three failed
attempts the cards are drawn from the static fallback dataset instead, with
hit points derived from each card's name; such battles are marked as offline.

Examples:
  battlemancer battle
  battlemancer battle --art
  battlemancer battle --verbose`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		showArt, _ := cmd.Flags().GetBool("art")

		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("error loading config: %v", err)
		}

		service := fetch.NewService(cfg, newLogger(cmd))

		result, err := service.BattlePair(cmd.Context())
		if err != nil {
			return fmt.Errorf("%v — run 'battlemancer battle' to try again", err)
		}

		displayBattle(result, showArt)

		return nil
	},
}

func init() {
	RootCmd.AddCommand(battleCmd)

	battleCmd.Flags().BoolP("art", "a", false, "Render the card images as ANSI art")
}

// displayBattle renders the two cards side by side and announces the winner.
func displayBattle(result *fetch.Result, showArt bool) {
	left := cardPanel(result.Cards[0], showArt)
	right := cardPanel(result.Cards[1], showArt)

	// Get terminal width
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		width = 80
	}

	fmt.Println()
	if result.FromFallback {
		fmt.Println("  " + colorize.YellowString("⚠ card API unreachable — battling with the offline deck"))
		fmt.Println()
	}

	leftWidth := panelWidth(left)
	gap := 6

	if leftWidth+gap+panelWidth(right) <= width {
		printSideBySide(left, right, leftWidth, gap)
	} else {
		// Terminal too narrow, stack the panels
		printPanel(left)
		fmt.Println()
		printPanel(right)
	}

	fmt.Println()
	fmt.Println("  " + verdict(result.Cards[0], result.Cards[1]))
	fmt.Println()
}

// cardPanel builds the display lines for a single card.
func cardPanel(c card.Card, showArt bool) []string {
	var lines []string

	if showArt {
		if art, err := cardArt(c); err == nil {
			lines = append(lines, strings.Split(strings.TrimRight(art, "\n"), "\n")...)
			lines = append(lines, "")
		}
	}

	lines = append(lines, colorize.CyanString("Card: ")+colorize.HiWhiteString("%s", c.Name))
	lines = append(lines, colorize.CyanString("HP:   ")+hpString(c.HP))

	if c.SmallImage != nil {
		lines = append(lines, colorize.CyanString("Img:  ")+*c.SmallImage)
	}

	return lines
}

// hpString colors the hit points by how sturdy the card is.
func hpString(hp int) string {
	switch {
	case hp >= 120:
		return colorize.HiGreenString("%d", hp)
	case hp >= 70:
		return colorize.HiYellowString("%d", hp)
	default:
		return colorize.HiRedString("%d", hp)
	}
}

// verdict compares hit points and declares a winner.
func verdict(a, b card.Card) string {
	switch {
	case a.HP > b.HP:
		return colorize.HiGreenString("%s wins!", a.Name)
	case b.HP > a.HP:
		return colorize.HiGreenString("%s wins!", b.Name)
	default:
		return colorize.HiYellowString("It's a draw!")
	}
}

func panelWidth(lines []string) int {
	widest := 0
	for _, line := range lines {
		if w := len([]rune(ansi.StripEscapes(line))); w > widest {
			widest = w
		}
	}
	return widest
}

func printSideBySide(left, right []string, leftWidth, gap int) {
	maxLines := max(len(left), len(right))
	for i := 0; i < maxLines; i++ {
		fmt.Print("  ")
		if i < len(left) {
			fmt.Print(left[i])
			visible := len([]rune(ansi.StripEscapes(left[i])))
			fmt.Print(strings.Repeat(" ", leftWidth-visible+gap))
		} else {
			fmt.Print(strings.Repeat(" ", leftWidth+gap))
		}
		if i < len(right) {
			fmt.Print(right[i])
		}
		fmt.Println()
	}
}

func printPanel(lines []string) {
	for _, line := range lines {
		fmt.Println("  " + line)
	}
}

// cardArt fetches the card's small image and renders it as ANSI art. Rendered
// art is cached under the cache dir keyed by the image URL, so repeat battles
// with the same card do not refetch the image.
func cardArt(c card.Card) (string, error) {
	if c.SmallImage == nil {
		return "", fmt.Errorf("card %s has no image", c.Name)
	}
	url := *c.SmallImage

	cacheDir := filepath.Join(config.GetCacheDir(), "art")
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create art cache directory: %v", err)
	}

	cachePath := filepath.Join(cacheDir, fmt.Sprintf("%x.ansi", md5.Sum([]byte(url))))
	if data, err := os.ReadFile(cachePath); err == nil {
		return string(data), nil
	}

	img, err := fetchImage(url)
	if err != nil {
		return "", err
	}

	art := ansi.Render(img, artWidth, artHeight)

	if err := os.WriteFile(cachePath, []byte(art), 0644); err != nil {
		return "", fmt.Errorf("failed to cache art: %v", err)
	}

	return art, nil
}

func fetchImage(url string) (image.Image, error) {
	client := &http.Client{Timeout: 20 * time.Second}

	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("error fetching card image: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("card image returned %s", resp.Status)
	}

	img, _, err := image.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error decoding card image: %v", err)
	}

	return img, nil
}

// max returns the maximum of two integers
func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
