package discovery

import (
	"context"
	"fmt"
	"net"
	"sync"

	"github.com/enbility/zeroconf/v3"
)

// MDNSAdvertiser announces a portal using zeroconf.
type MDNSAdvertiser struct {
	config AdvertiserConfig

	mu     sync.Mutex
	server *zeroconf.Server
}

// NewMDNSAdvertiser creates a new mDNS advertiser.
func NewMDNSAdvertiser(config AdvertiserConfig) *MDNSAdvertiser {
	return &MDNSAdvertiser{config: config}
}

// interfaces returns the network interfaces to advertise on, nil for all.
func (a *MDNSAdvertiser) interfaces() ([]net.Interface, error) {
	if a.config.Interface == "" {
		return nil, nil
	}
	iface, err := net.InterfaceByName(a.config.Interface)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnknownInterface, a.config.Interface, err)
	}
	return []net.Interface{*iface}, nil
}

// Advertise starts announcing the portal, replacing an earlier
// announcement.
func (a *MDNSAdvertiser) Advertise(ctx context.Context, info *PortalInfo) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.server != nil {
		a.server.Shutdown()
		a.server = nil
	}

	instance, err := InstanceName(info.InstanceName)
	if err != nil {
		return err
	}
	port := int(info.Port)
	if port == 0 {
		port = DefaultPort
	}

	ifaces, err := a.interfaces()
	if err != nil {
		return err
	}

	var opts []zeroconf.ServerOption
	if a.config.TTL > 0 {
		opts = append(opts, zeroconf.TTL(uint32(a.config.TTL.Seconds())))
	}

	server, err := zeroconf.Register(
		instance,
		ServiceTypePortal,
		Domain,
		port,
		TXTRecordsToStrings(EncodePortalTXT(info)),
		ifaces,
		opts...,
	)
	if err != nil {
		return fmt.Errorf("failed to register portal service: %w", err)
	}
	a.server = server
	return nil
}

// Stop withdraws the announcement.
func (a *MDNSAdvertiser) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.server != nil {
		a.server.Shutdown()
		a.server = nil
	}
}
