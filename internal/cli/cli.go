// Package cli provides the headless command-line interface over the store.
// It is a thin consumer of the store's public contract: every mutation goes
// through the store API and the library is persisted after each change.
package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dpshade/prompt-vault/internal/config"
	"github.com/dpshade/prompt-vault/internal/models"
	"github.com/dpshade/prompt-vault/internal/share"
	"github.com/dpshade/prompt-vault/internal/storage"
	"github.com/dpshade/prompt-vault/internal/store"
	"github.com/dpshade/prompt-vault/internal/view"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	faintStyle  = lipgloss.NewStyle().Faint(true)
	headerStyle = lipgloss.NewStyle().Bold(true).Underline(true)
)

// CLI wires the store, view pipeline, and durable store together.
type CLI struct {
	store    *store.Store
	pipeline *view.Pipeline
	durable  storage.DurableStore
	cfg      *config.Config
}

// New creates a CLI, restoring the library from the durable store.
func New(cfg *config.Config) (*CLI, error) {
	durable, err := storage.NewFileStore(cfg.LibraryDir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	st := store.NewWithOptions(store.Options{
		UndoDepth:       cfg.UndoDepth,
		CacheSize:       cfg.CacheSize,
		SuggestionLimit: cfg.SuggestionLimit,
	})
	if err := st.Restore(durable, store.LibraryKey); err != nil {
		return nil, fmt.Errorf("failed to restore library: %w", err)
	}
	return &CLI{
		store:    st,
		pipeline: view.NewPipeline(st),
		durable:  durable,
		cfg:      cfg,
	}, nil
}

// ExecuteCommand processes a CLI command and returns the result.
func (c *CLI) ExecuteCommand(args []string) error {
	if len(args) == 0 {
		return c.printUsage()
	}
	command := args[0]
	rest := args[1:]

	switch command {
	case "list", "ls":
		return c.cmdList(rest)
	case "search":
		return c.cmdSearch(rest, false)
	case "fuzzy":
		return c.cmdSearch(rest, true)
	case "suggest":
		return c.cmdSuggest(rest)
	case "add":
		return c.cmdAdd(rest)
	case "show", "get":
		return c.cmdShow(rest)
	case "delete", "rm":
		return c.cmdDelete(rest)
	case "favorite", "fav":
		return c.cmdFavorite(rest)
	case "undo":
		return c.report(c.store.Undo(), "Undid last change", "Nothing to undo")
	case "redo":
		return c.report(c.store.Redo(), "Redid last change", "Nothing to redo")
	case "duplicates", "dups":
		return c.cmdDuplicates(rest)
	case "categories", "cat":
		return c.cmdCategories(rest)
	case "tags":
		return c.cmdTags()
	case "export":
		return c.cmdExport(rest)
	case "import":
		return c.cmdImport(rest)
	case "share":
		return c.cmdShare(rest)
	case "receive":
		return c.cmdReceive(rest)
	case "help", "--help", "-h":
		return c.printUsage()
	default:
		return fmt.Errorf("unknown command: %s (try 'help')", command)
	}
}

func (c *CLI) cmdList(args []string) error {
	q := models.ViewQuery{
		Filter:   models.FilterAll,
		SortKey:  models.SortNewest,
		Page:     1,
		PageSize: c.cfg.PageSize,
	}
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--favorites":
			q.Filter = models.FilterFavorites
		case "--recent":
			q.Filter = models.FilterRecent
		case "--attachments":
			q.Filter = models.FilterWithAttachments
		case "--category":
			if i+1 >= len(args) {
				return fmt.Errorf("--category requires a path")
			}
			i++
			q.Filter = models.FilterCategory
			q.CategoryPath = args[i]
		case "--sort":
			if i+1 >= len(args) {
				return fmt.Errorf("--sort requires a key")
			}
			i++
			q.SortKey = models.SortKey(args[i])
		case "--page":
			if i+1 >= len(args) {
				return fmt.Errorf("--page requires a number")
			}
			i++
			page, err := strconv.Atoi(args[i])
			if err != nil {
				return fmt.Errorf("invalid page: %s", args[i])
			}
			q.Page = page
		case "--term":
			if i+1 >= len(args) {
				return fmt.Errorf("--term requires a search term")
			}
			i++
			q.SearchTerm = args[i]
		default:
			return fmt.Errorf("unknown flag: %s", args[i])
		}
	}

	result := c.pipeline.Resolve(q)
	pages := 0
	if result.TotalCount > 0 {
		pages = (result.TotalCount + c.cfg.PageSize - 1) / c.cfg.PageSize
	}
	fmt.Println(headerStyle.Render(fmt.Sprintf("%d prompts (page %d of %d)", result.TotalCount, q.Page, pages)))
	for _, r := range result.Items {
		c.printRecordLine(r)
	}
	return nil
}

func (c *CLI) cmdSearch(args []string, useFuzzy bool) error {
	if len(args) == 0 {
		return fmt.Errorf("search requires a term")
	}
	term := strings.Join(args, " ")
	if useFuzzy {
		for _, r := range c.store.SearchFuzzy(term) {
			c.printRecordLine(r)
		}
		return nil
	}
	ids := c.store.Search(term)
	for _, id := range ids {
		if r, err := c.store.Get(id); err == nil {
			c.printRecordLine(r)
		}
	}
	fmt.Println(faintStyle.Render(fmt.Sprintf("%d matches", len(ids))))
	return nil
}

func (c *CLI) cmdSuggest(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("suggest requires a term")
	}
	for _, s := range c.store.Suggest(strings.Join(args, " ")) {
		fmt.Println(s)
	}
	return nil
}

func (c *CLI) cmdAdd(args []string) error {
	draft := store.Draft{}
	for i := 0; i < len(args); i++ {
		flag := args[i]
		if i+1 >= len(args) {
			return fmt.Errorf("%s requires a value", flag)
		}
		i++
		value := args[i]
		switch flag {
		case "--title":
			draft.Title = value
		case "--category":
			draft.Category = value
		case "--content":
			draft.Content = value
		case "--notes":
			draft.Notes = value
		case "--tags":
			draft.Tags = strings.Split(value, ",")
		case "--rating":
			rating, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("invalid rating: %s", value)
			}
			draft.Rating = rating
		default:
			return fmt.Errorf("unknown flag: %s", flag)
		}
	}
	rec, err := c.store.CreateRecord(draft)
	if err != nil {
		return err
	}
	if err := c.persist(); err != nil {
		return err
	}
	fmt.Printf("Created %s (%s)\n", titleStyle.Render(rec.Title), rec.ID)
	return nil
}

func (c *CLI) cmdShow(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("show requires a record id")
	}
	rec, err := c.store.Get(args[0])
	if err != nil {
		return err
	}
	fmt.Println(titleStyle.Render(rec.Title))
	fmt.Println(faintStyle.Render(fmt.Sprintf("id: %s  category: %s  rating: %d  complexity: %d",
		rec.ID, rec.Category, rec.Rating, models.Complexity(rec))))
	if len(rec.Tags) > 0 {
		fmt.Println(faintStyle.Render("tags: " + strings.Join(rec.Tags, ", ")))
	}
	fmt.Println()
	fmt.Println(rec.Content)
	if rec.Notes != "" {
		fmt.Println()
		fmt.Println(faintStyle.Render("notes: " + rec.Notes))
	}
	return nil
}

func (c *CLI) cmdDelete(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("delete requires at least one record id")
	}
	if len(args) == 1 {
		if err := c.store.DeleteRecord(args[0]); err != nil {
			return err
		}
		fmt.Println("Deleted 1 prompt")
		return c.persist()
	}
	count := c.store.BulkDelete(args)
	fmt.Printf("Deleted %d prompts\n", count)
	return c.persist()
}

func (c *CLI) cmdFavorite(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("favorite requires a record id")
	}
	state, err := c.store.ToggleFavorite(args[0])
	if err != nil {
		return err
	}
	if state {
		fmt.Println("Added to favorites")
	} else {
		fmt.Println("Removed from favorites")
	}
	return c.persist()
}

func (c *CLI) cmdDuplicates(args []string) error {
	threshold := c.cfg.DuplicateThreshold
	if len(args) > 0 {
		parsed, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("invalid threshold: %s", args[0])
		}
		threshold = parsed
	}
	pairs := c.store.FindDuplicates(threshold)
	if len(pairs) == 0 {
		fmt.Println("No near-duplicates found")
		return nil
	}
	for _, p := range pairs {
		fmt.Printf("%3d%%  %s <-> %s\n", p.SimilarityPct,
			titleStyle.Render(p.A.Title), titleStyle.Render(p.B.Title))
	}
	return nil
}

func (c *CLI) cmdCategories(args []string) error {
	if len(args) == 0 || args[0] == "list" {
		for _, path := range c.store.CategoryPaths() {
			fmt.Println(path)
		}
		return nil
	}
	switch args[0] {
	case "add":
		if len(args) < 2 {
			return fmt.Errorf("categories add requires a name (and optional parent path)")
		}
		parent := ""
		if len(args) > 2 {
			parent = args[2]
		}
		path, err := c.store.CreateCategory(parent, args[1])
		if err != nil {
			return err
		}
		fmt.Printf("Created category %s\n", path)
	case "rename":
		if len(args) < 3 {
			return fmt.Errorf("categories rename requires a path and a new name")
		}
		newPath, err := c.store.RenameCategory(args[1], args[2])
		if err != nil {
			return err
		}
		fmt.Printf("Renamed to %s\n", newPath)
	case "delete":
		if len(args) < 2 {
			return fmt.Errorf("categories delete requires a path")
		}
		if err := c.store.DeleteCategory(args[1]); err != nil {
			return err
		}
		fmt.Printf("Deleted category %s (records moved to 'other')\n", args[1])
	default:
		return fmt.Errorf("unknown categories subcommand: %s", args[0])
	}
	return c.persist()
}

func (c *CLI) cmdTags() error {
	for _, tag := range c.store.AllTags() {
		fmt.Println(tag)
	}
	return nil
}

func (c *CLI) cmdExport(args []string) error {
	data, err := c.store.Export()
	if err != nil {
		return err
	}
	if len(args) == 0 {
		fmt.Println(string(data))
		return nil
	}
	if err := os.WriteFile(args[0], data, 0644); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}
	fmt.Printf("Exported %d prompts to %s\n", c.store.Len(), args[0])
	return nil
}

func (c *CLI) cmdImport(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("import requires a file path")
	}
	mode := store.ImportMerge
	if len(args) > 1 && args[1] == "--replace" {
		mode = store.ImportReplace
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read import file: %w", err)
	}
	count, err := c.store.Import(data, mode)
	if err != nil {
		return err
	}
	fmt.Printf("Imported %d prompts (%s mode)\n", count, mode)
	return c.persist()
}

func (c *CLI) cmdShare(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("share requires a record id")
	}
	rec, err := c.store.Get(args[0])
	if err != nil {
		return err
	}
	token, err := share.Encode(rec)
	if err != nil {
		return err
	}
	fmt.Println(token)
	return nil
}

func (c *CLI) cmdReceive(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("receive requires a share token")
	}
	payload, err := share.Decode(args[0])
	if err != nil {
		return err
	}
	rec, err := c.store.CreateRecord(store.Draft{
		Title:    payload.Title,
		Category: payload.Category,
		Tags:     payload.Tags,
		Content:  payload.Content,
		Notes:    payload.Notes,
		Rating:   payload.Rating,
	})
	if err != nil {
		return err
	}
	if err := c.persist(); err != nil {
		return err
	}
	fmt.Printf("Received %s (%s)\n", titleStyle.Render(rec.Title), rec.ID)
	return nil
}

func (c *CLI) report(changed bool, did, didNot string) error {
	if !changed {
		fmt.Println(didNot)
		return nil
	}
	fmt.Println(did)
	return c.persist()
}

func (c *CLI) persist() error {
	return c.store.Persist(c.durable, store.LibraryKey)
}

func (c *CLI) printRecordLine(r *models.Record) {
	marker := " "
	if c.store.IsFavorite(r.ID) {
		marker = "*"
	}
	line := fmt.Sprintf("%s %s  %s", marker, titleStyle.Render(r.Title),
		faintStyle.Render(fmt.Sprintf("[%s] %s", r.Category, r.ID)))
	fmt.Println(line)
}

func (c *CLI) printUsage() error {
	fmt.Print(`prompt-vault - personal prompt library

USAGE:
    prompt-vault <command> [arguments]

COMMANDS:
    list, ls            List prompts (--favorites, --recent, --attachments,
                        --category <path>, --sort <key>, --page <n>, --term <t>)
    search <term>       Substring search across title, content, tags, notes
    fuzzy <term>        Relevance-ranked fuzzy search
    suggest <term>      Autocomplete suggestions
    add                 Create a prompt (--title, --content, --category,
                        --tags a,b, --notes, --rating)
    show <id>           Print a prompt
    delete <id...>      Delete one or more prompts
    favorite <id>       Toggle favorite
    undo, redo          Step through record history
    duplicates [t]      Report near-duplicate pairs above threshold t
    categories          Manage categories (list|add|rename|delete)
    tags                List all tags
    export [file]       Export the library as JSON
    import <file>       Import a JSON export (--replace to overwrite)
    share <id>          Print a shareable token for a prompt
    receive <token>     File a shared prompt as a new record
`)
	return nil
}
