package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/resns"
)

type serverConfig struct {
	Host  string
	Limit int
}

// Demo resources, declared before any namespace exists.
var (
	counter  = resns.Define[int64]("request-count")
	greeting = resns.DefineWith[string]("greeting", func() string { return "hello" }, nil)
	config   = resns.DefineWith[serverConfig]("server-config", func() serverConfig {
		return serverConfig{Host: "localhost", Limit: 64}
	}, nil)
)

func main() {
	var (
		spaces      = flag.Int("spaces", 2, "Number of namespaces to create")
		debug       = flag.Bool("debug", false, "Enable debug logging")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	if *debug {
		logger, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
		resns.SetLogger(logger)
	}

	if *interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: interactive mode requires a terminal")
			os.Exit(1)
		}
		if err := runInteractive(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(*spaces); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(spaces int) error {
	if spaces < 2 {
		return fmt.Errorf("need at least 2 namespaces, got %d", spaces)
	}

	reg := resns.Default()
	fmt.Printf("Registry: %d resources\n", reg.Len())
	reg.Each(func(i int, d *resns.Descriptor) bool {
		fmt.Printf("  [%d] %s\n", i, d)
		return true
	})

	all := make([]*resns.Namespace, spaces)
	for i := range all {
		all[i] = resns.New()
		defer all[i].Close()
	}
	ns1, ns2 := all[0], all[1]

	fmt.Printf("\nFresh state: counter(ns1)=%d greeting(ns1)=%q\n",
		*counter.Get(ns1), *greeting.Get(ns1))

	// Mutate ns1 exclusively.
	if n, ok := counter.GetMut(ns1); ok {
		*n = 42
	}
	fmt.Printf("After mutation: counter(ns1)=%d counter(ns2)=%d\n",
		*counter.Get(ns1), *counter.Get(ns2))

	// Share ns1's counter into ns2; mutation blocks in both.
	counter.Share(ns2, ns1)
	_, ok1 := counter.GetMut(ns1)
	_, ok2 := counter.GetMut(ns2)
	fmt.Printf("After share: counter(ns2)=%d mutable(ns1)=%v mutable(ns2)=%v strong=%d\n",
		*counter.Get(ns2), ok1, ok2, counter.Strong(ns1))

	// Reset ns2 back to an exclusive default.
	counter.Reset(ns2)
	_, ok1 = counter.GetMut(ns1)
	fmt.Printf("After reset: counter(ns1)=%d counter(ns2)=%d mutable(ns1)=%v\n",
		*counter.Get(ns1), *counter.Get(ns2), ok1)

	// Structured payloads work the same way.
	if c, ok := config.GetMut(ns1); ok {
		c.Limit = 128
	}
	fmt.Printf("Config: ns1=%+v ns2=%+v\n", *config.Get(ns1), *config.Get(ns2))

	return nil
}

// demoResource erases the payload type so the TUI can treat all declared
// resources uniformly.
type demoResource interface {
	Name() string
	Render(ns *resns.Namespace) string
	Strong(ns *resns.Namespace) int64
	Mutable(ns *resns.Namespace) bool
	Set(ns *resns.Namespace, input string) error
	Share(dst, src *resns.Namespace)
	Reset(ns *resns.Namespace)
}

type demoRes[T any] struct {
	res   *resns.Resource[T]
	parse func(string) (T, error)
}

func (d *demoRes[T]) Name() string { return d.res.Descriptor().Name() }

func (d *demoRes[T]) Render(ns *resns.Namespace) string {
	return fmt.Sprintf("%v", *d.res.Get(ns))
}

func (d *demoRes[T]) Strong(ns *resns.Namespace) int64 { return d.res.Strong(ns) }

func (d *demoRes[T]) Mutable(ns *resns.Namespace) bool {
	_, ok := d.res.GetMut(ns)
	return ok
}

func (d *demoRes[T]) Set(ns *resns.Namespace, input string) error {
	v, err := d.parse(input)
	if err != nil {
		return err
	}
	p, ok := d.res.GetMut(ns)
	if !ok {
		return fmt.Errorf("%s is shared; reset first", d.Name())
	}
	*p = v
	return nil
}

func (d *demoRes[T]) Share(dst, src *resns.Namespace) { d.res.Share(dst, src) }
func (d *demoRes[T]) Reset(ns *resns.Namespace)       { d.res.Reset(ns) }

func demoResources() []demoResource {
	return []demoResource{
		&demoRes[int64]{res: counter, parse: func(s string) (int64, error) {
			return strconv.ParseInt(s, 10, 64)
		}},
		&demoRes[string]{res: greeting, parse: func(s string) (string, error) {
			return s, nil
		}},
		&demoRes[serverConfig]{res: config, parse: func(s string) (serverConfig, error) {
			limit, err := strconv.Atoi(s)
			if err != nil {
				return serverConfig{}, fmt.Errorf("limit must be an integer: %w", err)
			}
			return serverConfig{Host: "localhost", Limit: limit}, nil
		}},
	}
}
