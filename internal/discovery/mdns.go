// ABOUTME: mDNS service discovery for the NeuroSonic remote API
// ABOUTME: Handles both advertisement (engine) and browsing (control clients)
package discovery

import (
	"context"
	"fmt"
	"log"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/mdns"
	"github.com/neurosonic/neurosonic-go/internal/version"
)

// ServiceType is the DNS-SD type of the remote control API
const ServiceType = "_neurosonic._tcp"

// Config holds discovery configuration
type Config struct {
	ServiceName string
	Port        int
	Locale      string // advertised in TXT so clients can pick a session language
}

// Manager handles mDNS operations
type Manager struct {
	config    Config
	ctx       context.Context
	cancel    context.CancelFunc
	instances chan *Instance
}

// Instance describes a discovered engine
type Instance struct {
	Name    string
	Host    string
	Port    int
	Version string
	Locale  string
	APIPath string
}

// Addr returns host:port for HTTP clients
func (i *Instance) Addr() string {
	return net.JoinHostPort(i.Host, strconv.Itoa(i.Port))
}

// NewManager creates a discovery manager
func NewManager(config Config) *Manager {
	ctx, cancel := context.WithCancel(context.Background())

	return &Manager{
		config:    config,
		ctx:       ctx,
		cancel:    cancel,
		instances: make(chan *Instance, 10),
	}
}

// TXT returns the TXT records advertised for this engine
func (m *Manager) TXT() []string {
	txt := []string{
		"path=/api",
		"ws=/ws",
		"version=" + version.Version,
		"product=" + version.Product,
		"manufacturer=" + version.Manufacturer,
	}
	if m.config.Locale != "" {
		txt = append(txt, "locale="+m.config.Locale)
	}
	return txt
}

// Advertise advertises the remote API via mDNS until Stop
func (m *Manager) Advertise() error {
	ips, err := getLocalIPs()
	if err != nil {
		return fmt.Errorf("failed to get local IPs: %w", err)
	}

	service, err := mdns.NewMDNSService(
		m.config.ServiceName,
		ServiceType,
		"",
		"",
		m.config.Port,
		ips,
		m.TXT(),
	)
	if err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}

	server, err := mdns.NewServer(&mdns.Config{Zone: service})
	if err != nil {
		return fmt.Errorf("failed to create mdns server: %w", err)
	}

	log.Printf("Advertising mDNS service: %s on port %d (type: %s)", m.config.ServiceName, m.config.Port, ServiceType)

	go func() {
		<-m.ctx.Done()
		server.Shutdown()
	}()

	return nil
}

// Browse searches for engines until Stop, delivering them on Instances
func (m *Manager) Browse() error {
	go m.browseLoop()
	return nil
}

// browseLoop continuously browses for engines
func (m *Manager) browseLoop() {
	for {
		select {
		case <-m.ctx.Done():
			return
		default:
		}

		entries := make(chan *mdns.ServiceEntry, 10)

		go func() {
			for entry := range entries {
				inst, ok := fromEntry(entry)
				if !ok {
					continue
				}

				log.Printf("Discovered engine: %s at %s", inst.Name, inst.Addr())

				select {
				case m.instances <- inst:
				case <-m.ctx.Done():
					return
				}
			}
		}()

		if err := mdns.Query(queryParams(entries, 3*time.Second)); err != nil {
			log.Printf("mDNS query failed: %v", err)
		}
		close(entries)
	}
}

// Instances returns the channel of discovered engines
func (m *Manager) Instances() <-chan *Instance {
	return m.instances
}

// Stop stops advertising and browsing
func (m *Manager) Stop() {
	m.cancel()
}

// Lookup runs a single query and returns the engines that answered
// within timeout
func Lookup(timeout time.Duration) ([]*Instance, error) {
	entries := make(chan *mdns.ServiceEntry, 16)
	var found []*Instance
	done := make(chan struct{})

	go func() {
		defer close(done)
		seen := make(map[string]bool)
		for entry := range entries {
			inst, ok := fromEntry(entry)
			if !ok || seen[inst.Name] {
				continue
			}
			seen[inst.Name] = true
			found = append(found, inst)
		}
	}()

	err := mdns.Query(queryParams(entries, timeout))
	close(entries)
	<-done
	if err != nil {
		return nil, fmt.Errorf("failed to query mdns: %w", err)
	}
	return found, nil
}

func queryParams(entries chan *mdns.ServiceEntry, timeout time.Duration) *mdns.QueryParam {
	params := mdns.DefaultParams(ServiceType)
	params.Domain = "local"
	params.Timeout = timeout
	params.Entries = entries
	params.DisableIPv6 = true
	return params
}

// fromEntry converts an mDNS answer, skipping entries without an IPv4
// address or from other service types
func fromEntry(entry *mdns.ServiceEntry) (*Instance, bool) {
	if entry == nil || entry.AddrV4 == nil {
		return nil, false
	}
	if !strings.Contains(entry.Name, ServiceType) {
		return nil, false
	}

	inst := &Instance{
		Name: instanceName(entry.Name),
		Host: entry.AddrV4.String(),
		Port: entry.Port,
	}
	for _, field := range entry.InfoFields {
		key, value, ok := strings.Cut(field, "=")
		if !ok {
			continue
		}
		switch key {
		case "version":
			inst.Version = value
		case "locale":
			inst.Locale = value
		case "path":
			inst.APIPath = value
		}
	}
	return inst, true
}

// instanceName strips the service and domain suffix from a full name
func instanceName(full string) string {
	if i := strings.Index(full, "."+ServiceType); i > 0 {
		return strings.ReplaceAll(full[:i], `\ `, " ")
	}
	return full
}

// getLocalIPs returns local IP addresses
func getLocalIPs() ([]net.IP, error) {
	var ips []net.IP

	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, err
	}

	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}

		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}

		for _, addr := range addrs {
			if ipnet, ok := addr.(*net.IPNet); ok && !ipnet.IP.IsLoopback() {
				if ipnet.IP.To4() != nil {
					ips = append(ips, ipnet.IP)
				}
			}
		}
	}

	return ips, nil
}
