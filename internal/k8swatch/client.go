package k8swatch

import (
	"context"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"

	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
	"k8s.io/client-go/util/homedir"
)

// DefaultIdleReadTimeout bounds how long a read on a watch body may block
// before the step function classifies it as NoData: the socket read timeout
// is configured on the underlying HTTP client's dialer, not per-call.
const DefaultIdleReadTimeout = 30 * time.Second

// NewHTTPClient builds the HTTP adapter's transport: kubeconfig resolution
// follows the standard three-step fallback (in-cluster, then $KUBECONFIG,
// then ~/.kube/config via client-go/util/homedir), then asks client-go for
// a bare *http.Client (rest.HTTPClientFor) carrying the resolved
// TLS/bearer-token transport rather than a typed clientset, and wraps its
// dialer so a read that goes idle longer than idleTimeout surfaces as a
// net.Error with Timeout()==true — exactly what the step function
// (step.go) classifies as NoData rather than Error.
func NewHTTPClient(kubeconfigPath, contextName string, idleTimeout time.Duration) (*HTTPClient, error) {
	if idleTimeout <= 0 {
		idleTimeout = DefaultIdleReadTimeout
	}

	config, err := loadRestConfig(kubeconfigPath, contextName)
	if err != nil {
		return nil, err
	}

	baseDial := config.Dial
	config.Dial = func(ctx context.Context, network, addr string) (net.Conn, error) {
		var (
			conn net.Conn
			err  error
		)
		if baseDial != nil {
			conn, err = baseDial(ctx, network, addr)
		} else {
			conn, err = (&net.Dialer{}).DialContext(ctx, network, addr)
		}
		if err != nil {
			return nil, err
		}
		return &idleTimeoutConn{Conn: conn, timeout: idleTimeout}, nil
	}

	httpClient, err := rest.HTTPClientFor(config)
	if err != nil {
		return nil, fmt.Errorf("failed to build http client: %w", err)
	}

	return &HTTPClient{Origin: config.Host, Doer: httpClient}, nil
}

// loadRestConfig tries in-cluster config first, then falls back to an
// explicit kubeconfig path, then $KUBECONFIG, then ~/.kube/config.
func loadRestConfig(kubeconfigPath, contextName string) (*rest.Config, error) {
	if config, err := rest.InClusterConfig(); err == nil {
		return config, nil
	}

	if kubeconfigPath == "" {
		if envConfig := os.Getenv("KUBECONFIG"); envConfig != "" {
			kubeconfigPath = envConfig
		} else if home := homedir.HomeDir(); home != "" {
			kubeconfigPath = filepath.Join(home, ".kube", "config")
		}
	}

	overrides := &clientcmd.ConfigOverrides{}
	if contextName != "" {
		overrides.CurrentContext = contextName
	}

	loadingRules := &clientcmd.ClientConfigLoadingRules{ExplicitPath: kubeconfigPath}
	config, err := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(loadingRules, overrides).ClientConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load kubeconfig: %w", err)
	}
	return config, nil
}

// idleTimeoutConn resets a fixed read deadline before every Read so a
// watch connection that goes quiet for longer than timeout reports a
// timeout error instead of hanging forever.
type idleTimeoutConn struct {
	net.Conn
	timeout time.Duration
}

func (c *idleTimeoutConn) Read(b []byte) (int, error) {
	if err := c.Conn.SetReadDeadline(time.Now().Add(c.timeout)); err != nil {
		return 0, err
	}
	return c.Conn.Read(b)
}
