// Command board is a line-oriented menu board: it subscribes to the
// refresh orchestrator and re-renders the current page on every change,
// playing the part the shop page plays in the browser.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/n1kyfn/restaurant/pkg/menu"
	"github.com/n1kyfn/restaurant/pkg/menuapi"
	"github.com/n1kyfn/restaurant/pkg/paging"
	"github.com/n1kyfn/restaurant/pkg/types"
)

type board struct{}

func (b *board) OnFilteredListChanged(items []types.MenuItem) {
	if len(items) == 0 {
		fmt.Println("No results found")
		return
	}
	for _, item := range items {
		price := "-"
		if value, ok := item.GetPrice(); ok {
			price = fmt.Sprintf("$%.2f", value)
		}
		fmt.Printf("%-40s %-12s %s\n", item.Title, item.Category, price)
	}
}

func (b *board) OnPageStateChanged(nav paging.Navigation) {
	if !nav.Visible {
		return
	}
	parts := make([]string, 0, len(nav.PageButtons))
	for _, btn := range nav.PageButtons {
		if btn.IsActive {
			parts = append(parts, fmt.Sprintf("[%d]", btn.Index+1))
		} else {
			parts = append(parts, strconv.Itoa(btn.Index+1))
		}
	}
	fmt.Printf("pages: %s\n", strings.Join(parts, " "))
}

func (b *board) OnFetchError(err error) {
	fmt.Printf("Error: %v\n", err)
}

func main() {
	apiUrl := os.Getenv("ITEM_API_URL")
	if apiUrl == "" {
		log.Fatal("ITEM_API_URL is required")
	}

	manager := menu.NewManager(menuapi.NewClient(apiUrl))
	manager.Subscribe(&board{})
	manager.Refresh(context.Background())

	scanner := bufio.NewScanner(os.Stdin)
	fmt.Println("commands: search <term> | cat <name> | price <min> <max> | sort <price_asc|price_desc|none> | page <n> | quit")
	for scanner.Scan() {
		cmd, arg, _ := strings.Cut(strings.TrimSpace(scanner.Text()), " ")
		switch cmd {
		case "search":
			manager.SetSearchTerm(arg)
		case "cat":
			manager.ToggleCategory(arg)
		case "price":
			minArg, maxArg, _ := strings.Cut(arg, " ")
			manager.SetPriceRange(parseBound(minArg), parseBound(maxArg))
		case "sort":
			switch arg {
			case "price_asc", "price_desc":
				manager.SetSort(arg)
			default:
				manager.SetSort(types.SortNone)
			}
		case "page":
			page, err := strconv.Atoi(arg)
			if err != nil {
				fmt.Println("page needs a number")
				continue
			}
			manager.GoToPage(page - 1)
		case "quit", "exit":
			return
		case "":
		default:
			fmt.Printf("unknown command %q\n", cmd)
		}
	}
}

func parseBound(arg string) *float64 {
	value, err := strconv.ParseFloat(strings.TrimSpace(arg), 64)
	if err != nil {
		return nil
	}
	return &value
}
