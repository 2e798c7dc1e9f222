// Command k8s-watch streams a single Kubernetes resource collection's watch
// events to stdout as newline-delimited JSON or "---"-separated YAML, reconnecting with
// exponential backoff whenever the underlying session is interrupted.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"k8s.io/klog/v2"
	"sigs.k8s.io/yaml"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"

	"github.com/fteychene/k8s-resources-watcher-go/internal/config"
	"github.com/fteychene/k8s-resources-watcher-go/internal/debug"
	"github.com/fteychene/k8s-resources-watcher-go/watch"
)

var (
	kubeconfigPath  string
	contextName     string
	namespace       string
	fieldSelector   string
	labelSelector   string
	resourceVersion string
	output          string
	configPath      string
	debugMode       bool
)

// resourceDef maps a CLI resource name to the watch path it's served from.
// Namespaced kinds embed %s for the namespace; cluster-scoped kinds don't.
type resourceDef struct {
	namespaced bool
	pathFmt    string
}

var resources = map[string]resourceDef{
	"pods":        {namespaced: true, pathFmt: "/api/v1/namespaces/%s/pods"},
	"services":    {namespaced: true, pathFmt: "/api/v1/namespaces/%s/services"},
	"configmaps":  {namespaced: true, pathFmt: "/api/v1/namespaces/%s/configmaps"},
	"secrets":     {namespaced: true, pathFmt: "/api/v1/namespaces/%s/secrets"},
	"events":      {namespaced: true, pathFmt: "/api/v1/namespaces/%s/events"},
	"deployments": {namespaced: true, pathFmt: "/apis/apps/v1/namespaces/%s/deployments"},
	"namespaces":  {namespaced: false, pathFmt: "/api/v1/namespaces"},
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "k8s-watch <resource>",
		Short: "Stream a Kubernetes resource collection's watch events",
		Long: `k8s-watch opens a ?watch=true session against the Kubernetes API for a
single resource collection and prints each event as one line of JSON or as
one YAML document,
reconnecting automatically if the session is interrupted or its
resourceVersion goes stale.`,
		Args: cobra.ExactArgs(1),
		RunE: run,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default: ~/.k8s-watch/config.yaml)")
	rootCmd.Flags().StringVar(&kubeconfigPath, "kubeconfig", "", "Path to kubeconfig file")
	rootCmd.Flags().StringVar(&contextName, "context", "", "Kubernetes context to use")
	rootCmd.Flags().StringVarP(&namespace, "namespace", "n", "", "Namespace for namespaced resources (default from config)")
	rootCmd.Flags().StringVar(&fieldSelector, "field-selector", "", "Field selector to filter events")
	rootCmd.Flags().StringVar(&labelSelector, "label-selector", "", "Label selector to filter events")
	rootCmd.Flags().StringVar(&resourceVersion, "resource-version", "", "Resume the watch from this resourceVersion")
	rootCmd.Flags().StringVarP(&output, "output", "o", "json", "Output format: json or yaml")
	rootCmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug logging to ~/.k8s-watch/debug.log")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	if err := debug.InitLogger(debugMode); err != nil {
		return fmt.Errorf("failed to initialize debug logger: %w", err)
	}
	defer debug.CloseLogger()

	// client-go writes unsolicited diagnostics to stderr by default, which
	// would interleave with the newline-delimited output this command
	// promises its callers.
	klog.SetOutput(io.Discard)
	klogFlags := flag.NewFlagSet("klog", flag.ContinueOnError)
	klog.InitFlags(klogFlags)
	_ = klogFlags.Set("logtostderr", "false")
	_ = klogFlags.Set("v", "-1")

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if output != "json" && output != "yaml" {
		return fmt.Errorf("invalid --output %q (must be json or yaml)", output)
	}

	ns := namespace
	if ns == "" {
		ns = cfg.Watch.Namespace
	}
	kc := kubeconfigPath
	if kc == "" {
		kc = cfg.Watch.Kubeconfig
	}
	ctxName := contextName
	if ctxName == "" {
		ctxName = cfg.Watch.Context
	}

	def, ok := resources[args[0]]
	if !ok {
		return fmt.Errorf("unknown resource %q (known: pods, services, configmaps, secrets, events, deployments, namespaces)", args[0])
	}
	path := def.pathFmt
	if def.namespaced {
		path = fmt.Sprintf(def.pathFmt, ns)
	}

	client, err := watch.NewHTTPClient(kc, ctxName, cfg.GetIdleTimeout())
	if err != nil {
		return fmt.Errorf("failed to build kubernetes http client: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	switch args[0] {
	case "pods":
		return runWatch[corev1.Pod](ctx, client, path, cfg)
	case "services":
		return runWatch[corev1.Service](ctx, client, path, cfg)
	case "configmaps":
		return runWatch[corev1.ConfigMap](ctx, client, path, cfg)
	case "secrets":
		return runWatch[corev1.Secret](ctx, client, path, cfg)
	case "events":
		return runWatch[corev1.Event](ctx, client, path, cfg)
	case "deployments":
		return runWatch[appsv1.Deployment](ctx, client, path, cfg)
	case "namespaces":
		return runWatch[corev1.Namespace](ctx, client, path, cfg)
	default:
		return fmt.Errorf("unhandled resource %q", args[0])
	}
}

// runWatch opens a session for T and pulls from it until ctx is canceled,
// printing each WatchResponse and sleeping on backoff between Error items.
// InvalidResourceVersion and NoData never stop the loop.
func runWatch[T any](ctx context.Context, client *watch.HTTPClient, path string, cfg *config.Config) error {
	opts := watch.Options[T]{
		FieldSelector:   fieldSelector,
		LabelSelector:   labelSelector,
		ResourceVersion: resourceVersion,
	}

	seq, err := watch.Resource[T](ctx, client, path, opts)
	if err != nil {
		return fmt.Errorf("failed to open watch session: %w", err)
	}
	defer seq.Close()

	backoff := watch.NewReconnectBackoffWithConfig(
		cfg.GetBackoffInitialDelay(),
		cfg.GetBackoffMaxDelay(),
		cfg.Watch.BackoffMultiplier,
		cfg.Watch.BackoffJitter,
	)

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		switch item := seq.Next().(type) {
		case watch.WatchResponse[T]:
			backoff.Reset()
			if err := render(item.Kind, item.Data); err != nil {
				fmt.Fprintf(os.Stderr, "failed to render item: %v\n", err)
			}
		case watch.InvalidResourceVersion:
			fmt.Fprintf(os.Stderr, "resourceVersion stale, reopening (new=%q)\n", item.NewVersion)
		case watch.NoData:
			// idle tick, nothing to do.
		case watch.Error:
			fmt.Fprintf(os.Stderr, "watch error: %v\n", item.Cause)
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(backoff.Next(item.Cause)):
			}
		}
	}
}

type renderedEvent struct {
	Type   string          `json:"type"`
	Object json.RawMessage `json:"object"`
}

func render(kind watch.EventKind, data interface{}) error {
	objectJSON, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal object: %w", err)
	}

	event := renderedEvent{Type: string(kind), Object: objectJSON}

	if output == "yaml" {
		out, err := yaml.Marshal(event)
		if err != nil {
			return fmt.Errorf("marshal yaml: %w", err)
		}
		fmt.Print("---\n")
		fmt.Print(string(out))
		return nil
	}

	line, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	fmt.Println(string(line))
	return nil
}
