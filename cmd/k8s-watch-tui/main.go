// Command k8s-watch-tui is a small bubbletea program that watches pods and
// events in a single namespace side by side, demonstrating the watch
// package under an interactive consumer.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	corev1 "k8s.io/api/core/v1"

	"github.com/fteychene/k8s-resources-watcher-go/internal/config"
	"github.com/fteychene/k8s-resources-watcher-go/internal/debug"
	"github.com/fteychene/k8s-resources-watcher-go/internal/tui"
	"github.com/fteychene/k8s-resources-watcher-go/watch"
)

var (
	kubeconfigPath string
	contextName    string
	namespace      string
	configPath     string
	debugMode      bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "k8s-watch-tui",
		Short: "Watch pods and events live in a terminal UI",
		Long: `k8s-watch-tui opens ?watch=true sessions for pods and events in a single
namespace and renders the merged event feed in a scrolling terminal viewer.`,
		RunE: run,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default: ~/.k8s-watch/config.yaml)")
	rootCmd.Flags().StringVar(&kubeconfigPath, "kubeconfig", "", "Path to kubeconfig file")
	rootCmd.Flags().StringVar(&contextName, "context", "", "Kubernetes context to use")
	rootCmd.Flags().StringVarP(&namespace, "namespace", "n", "", "Namespace to watch (default from config)")
	rootCmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug logging to ~/.k8s-watch/debug.log")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(_ *cobra.Command, _ []string) error {
	if err := debug.InitLogger(debugMode); err != nil {
		return fmt.Errorf("failed to initialize debug logger: %w", err)
	}
	defer debug.CloseLogger()

	// Suppress klog output to prevent Kubernetes client-go from corrupting
	// the alternate screen, exactly as the original TUI did.
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

	client, err := watch.NewHTTPClient(kc, ctxName, cfg.GetIdleTimeout())
	if err != nil {
		return fmt.Errorf("failed to build kubernetes http client: %w", err)
	}

	// This context governs the whole session, not just the handshake: the
	// Sequence reuses it for every later reconnect too, so it must outlive
	// the initial call and only be canceled when the program exits.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	podSeq, err := watch.Resource[corev1.Pod](ctx, client, fmt.Sprintf("/api/v1/namespaces/%s/pods", ns), watch.Options[corev1.Pod]{})
	if err != nil {
		return fmt.Errorf("failed to open pod watch: %w", err)
	}
	eventSeq, err := watch.Resource[corev1.Event](ctx, client, fmt.Sprintf("/api/v1/namespaces/%s/events", ns), watch.Options[corev1.Event]{})
	if err != nil {
		podSeq.Close()
		return fmt.Errorf("failed to open event watch: %w", err)
	}

	model := tui.New(podSeq, eventSeq, cfg.TUI.Quit, cfg.TUI.Help)
	defer model.Close()

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running tui: %w", err)
	}

	return nil
}
