package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net"
	"os"
	"time"

	"pokedex/internal/notify"
	"pokedex/pkg/utils"
)

func main() {
	addr := flag.String("addr", "127.0.0.1:7070", "TCP toast stream address")
	raw := flag.Bool("raw", false, "print the JSON lines as received")
	flag.Parse()

	log := utils.NewLogger(utils.LogConfig{Level: "info", Pretty: true})

	for {
		if err := run(*addr, *raw, os.Stdout); err != nil {
			log.Warn().Err(err).Str("addr", *addr).Msg("disconnected")
		}
		time.Sleep(1 * time.Second) // auto reconnect
	}
}

func run(addr string, raw bool, out io.Writer) error {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return fmt.Errorf("dial %s: %w", addr, err)
	}
	defer conn.Close()

	fmt.Fprintf(out, "connected to %s\n", addr)

	sc := bufio.NewScanner(conn)
	for sc.Scan() {
		printLine(out, sc.Bytes(), raw)
	}
	if err := sc.Err(); err != nil {
		return err
	}
	return io.EOF
}

func printLine(out io.Writer, line []byte, raw bool) {
	if raw {
		fmt.Fprintln(out, string(line))
		return
	}
	var t notify.Toast
	if err := json.Unmarshal(line, &t); err != nil {
		// not JSON? print raw
		fmt.Fprintln(out, string(line))
		return
	}
	if t.Type != "toast" {
		return
	}
	fmt.Fprintf(out, "[%s] %-12s %s\n", t.At.Local().Format(time.TimeOnly), t.Summary, t.Detail)
}
