package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"helmsman/pkg/helmsman"
)

const version = "0.1.0"

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: helmsman-cli <command> [options]\n\n")
		fmt.Fprintf(os.Stderr, "Commands:\n")
		fmt.Fprintf(os.Stderr, "  version                                  Print the CLI version\n")
		fmt.Fprintf(os.Stderr, "  positions                                List tracked positions\n")
		fmt.Fprintf(os.Stderr, "  signals                                  List pending signals\n")
		fmt.Fprintf(os.Stderr, "  submit <sym> <buy|sell> <price> <stop> [source]\n")
		fmt.Fprintf(os.Stderr, "                                           Submit a signal\n")
		fmt.Fprintf(os.Stderr, "  withdraw <sym>                           Withdraw a pending signal\n")
		fmt.Fprintf(os.Stderr, "  account                                  Show the account snapshot\n")
		fmt.Fprintf(os.Stderr, "  events [date]                            Show the execution journal\n")
		fmt.Fprintf(os.Stderr, "\nThe server address comes from HELMSMAN_ADDR (default http://localhost:8090).\n")
	}

	if len(os.Args) < 2 {
		flag.Usage()
		os.Exit(1)
	}

	addr := "http://localhost:8090"
	if a := os.Getenv("HELMSMAN_ADDR"); a != "" {
		addr = a
	}
	client := helmsman.NewClient(addr)
	ctx := context.Background()

	switch os.Args[1] {
	case "version":
		fmt.Printf("helmsman-cli %s\n", version)

	case "positions":
		positions, err := client.Positions(ctx)
		fatalIf(err)
		if len(positions) == 0 {
			fmt.Println("no tracked positions")
			return
		}
		fmt.Printf("%-8s %10s %10s %-12s %s\n", "SYMBOL", "ENTRY", "STOP", "SOURCE", "OPENED")
		for _, p := range positions {
			fmt.Printf("%-8s %10.2f %10.2f %-12s %s\n",
				p.Symbol, p.EntryPrice, p.StopLevel, p.Source,
				p.OpenedAt.Format("2006-01-02 15:04"))
		}

	case "signals":
		signals, err := client.Signals(ctx)
		fatalIf(err)
		if len(signals) == 0 {
			fmt.Println("no pending signals")
			return
		}
		fmt.Printf("%-8s %-5s %10s %10s %-12s\n", "SYMBOL", "SIDE", "PRICE", "STOP", "SOURCE")
		for _, s := range signals {
			fmt.Printf("%-8s %-5s %10.2f %10.2f %-12s\n",
				s.Symbol, s.Action, s.Price, s.StopLevel, s.Source)
		}

	case "submit":
		if len(os.Args) < 6 {
			fmt.Fprintln(os.Stderr, "usage: helmsman-cli submit <sym> <buy|sell> <price> <stop> [source]")
			os.Exit(1)
		}
		price, err := strconv.ParseFloat(os.Args[4], 64)
		fatalIf(err)
		stop, err := strconv.ParseFloat(os.Args[5], 64)
		fatalIf(err)
		source := "long_term"
		if len(os.Args) > 6 {
			source = os.Args[6]
		}
		err = client.SubmitSignal(ctx, helmsman.Signal{
			Symbol:    strings.ToUpper(os.Args[2]),
			Action:    strings.ToLower(os.Args[3]),
			Price:     price,
			StopLevel: stop,
			Source:    source,
		})
		fatalIf(err)
		fmt.Println("signal admitted")

	case "withdraw":
		if len(os.Args) < 3 {
			fmt.Fprintln(os.Stderr, "usage: helmsman-cli withdraw <sym>")
			os.Exit(1)
		}
		fatalIf(client.DeleteSignal(ctx, strings.ToUpper(os.Args[2])))
		fmt.Println("signal withdrawn")

	case "account":
		acct, err := client.Account(ctx)
		fatalIf(err)
		fmt.Printf("gateway:      %s\n", acct.Gateway)
		fmt.Printf("equity:       %.2f\n", acct.Equity)
		fmt.Printf("last equity:  %.2f\n", acct.LastEquity)
		fmt.Printf("cash:         %.2f\n", acct.Cash)
		fmt.Printf("buying power: %.2f\n", acct.BuyingPower)
		fmt.Printf("pnl:          %.2f\n", acct.PnL)

	case "events":
		var day time.Time
		if len(os.Args) > 2 {
			parsed, err := time.Parse("2006-01-02", os.Args[2])
			fatalIf(err)
			day = parsed
		}
		events, err := client.Events(ctx, day)
		fatalIf(err)
		if len(events) == 0 {
			fmt.Println("no events")
			return
		}
		for _, e := range events {
			fmt.Printf("%s %-18s %-8s %-5s qty=%-8.0f price=%-10.2f stop=%-10.2f %s\n",
				e.Time.Format("15:04:05"), e.Type, e.Symbol, e.Side, e.Qty, e.Price, e.Stop, e.Note)
		}

	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", os.Args[1])
		flag.Usage()
		os.Exit(1)
	}
}

func fatalIf(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
