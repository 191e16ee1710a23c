// Package netsim provides the simulated home network the player explores.
// The scenario is fixed so every player extracts the same answers; only the
// player's hostname is personalized.
package netsim

import (
	"fmt"
	"strconv"
	"strings"
)

// Device is a host on the simulated network.
type Device struct {
	Hostname     string
	IP           string
	MAC          string
	Type         string // "router", "computer", "phone", "iot"
	Manufacturer string
}

// PlayerHost describes the player's own machine as seen by ipconfig/ifconfig.
type PlayerHost struct {
	Hostname       string
	IP             string
	MAC            string
	SubnetMask     string
	DefaultGateway string
	DNSServers     []string
	DHCPEnabled    bool
	AdapterName    string
}

// Router describes the gateway device.
type Router struct {
	Hostname string
	IP       string
	MAC      string
	Model    string
	Firmware string
}

// Info holds the derived addressing facts for the subnet.
type Info struct {
	NetworkAddress   string
	BroadcastAddress string
	SubnetMask       string
	CIDR             string
	TotalDevices     int
	DHCPRange        string
}

// Network is the complete fixed scenario.
type Network struct {
	Player  PlayerHost
	Router  Router
	Devices []Device
	Info    Info
}

// New builds the fixed network scenario for the given player nickname.
func New(nickname string) *Network {
	if nickname == "" {
		nickname = "Player"
	}

	devices := []Device{
		{Hostname: "LAPTOP-MARIE", IP: "192.168.1.75", MAC: "A4:5E:60:C2:D1:8F", Type: "computer", Manufacturer: "Dell"},
		{Hostname: "iPhone-Papa", IP: "192.168.1.155", MAC: "34:36:3B:A7:B2:C9", Type: "phone", Manufacturer: "Apple"},
		{Hostname: "Smart-TV", IP: "192.168.1.185", MAC: "D0:17:C2:5F:8A:3B", Type: "iot", Manufacturer: "Samsung"},
		{Hostname: "Imprimante-HP", IP: "192.168.1.220", MAC: "B8:27:EB:4D:2E:7C", Type: "iot", Manufacturer: "HP"},
	}

	return &Network{
		Player: PlayerHost{
			Hostname:       nickname + "-PC",
			IP:             "192.168.1.120",
			MAC:            "00:15:00-2B-3A-D4", // as shown by ipconfig, dashes included
			SubnetMask:     "255.255.255.0",
			DefaultGateway: "192.168.1.1",
			DNSServers:     []string{"8.8.8.8", "8.8.4.4"},
			DHCPEnabled:    true,
			AdapterName:    "Ethernet0",
		},
		Router: Router{
			Hostname: "home",
			IP:       "192.168.1.1",
			MAC:      "00:17:9A:2B:3C:4D",
			Model:    "D-Link DIR-825",
			Firmware: "v2.3.24",
		},
		Devices: devices,
		Info: Info{
			NetworkAddress:   "192.168.1.0",
			BroadcastAddress: "192.168.1.255",
			SubnetMask:       "255.255.255.0",
			CIDR:             "192.168.1.0/24",
			TotalDevices:     len(devices) + 2, // player and router included
			DHCPRange:        "192.168.1.100 - 192.168.1.200",
		},
	}
}

// IPConfigAll renders an "ipconfig /all" style report.
func (n *Network) IPConfigAll() string {
	p := n.Player
	dhcp := "Non"
	if p.DHCPEnabled {
		dhcp = "Oui"
	}

	var b strings.Builder
	b.WriteString("Configuration IP de Windows\n\n\n")
	fmt.Fprintf(&b, "Carte Ethernet %s :\n\n", p.AdapterName)
	b.WriteString("   Suffixe DNS propre a la connexion. . . : home\n")
	b.WriteString("   Description. . . . . . . . . . . . . . : Intel(R) Ethernet Connection\n")
	fmt.Fprintf(&b, "   Adresse physique . . . . . . . . . . . : %s\n", p.MAC)
	fmt.Fprintf(&b, "   DHCP active. . . . . . . . . . . . . . : %s\n", dhcp)
	b.WriteString("   Configuration automatique activee. . . : Oui\n")
	fmt.Fprintf(&b, "   Adresse IPv4. . . . . . . . . . . . . : %s(prefere)\n", p.IP)
	fmt.Fprintf(&b, "   Masque de sous-reseau . . . . . . . . : %s\n", p.SubnetMask)
	fmt.Fprintf(&b, "   Passerelle par defaut . . . . . . . . : %s\n", p.DefaultGateway)
	fmt.Fprintf(&b, "   Serveur DHCP . . . . . . . . . . . . . : %s\n", n.Router.IP)
	fmt.Fprintf(&b, "   Serveurs DNS . . . . . . . . . . . . . : %s\n", p.DNSServers[0])
	fmt.Fprintf(&b, "                                            %s", p.DNSServers[1])
	return b.String()
}

// IPConfig renders the short "ipconfig" report.
func (n *Network) IPConfig() string {
	p := n.Player
	var b strings.Builder
	b.WriteString("Configuration IP de Windows\n\n")
	fmt.Fprintf(&b, "Carte Ethernet %s :\n\n", p.AdapterName)
	fmt.Fprintf(&b, "   Adresse IPv4. . . . . . . . . . . . . : %s\n", p.IP)
	fmt.Fprintf(&b, "   Masque de sous-reseau . . . . . . . : %s\n", p.SubnetMask)
	fmt.Fprintf(&b, "   Passerelle par defaut . . . . . . . : %s", p.DefaultGateway)
	return b.String()
}

// IfConfig renders an "ifconfig" style report.
func (n *Network) IfConfig() string {
	p := n.Player
	var b strings.Builder
	b.WriteString("eth0: flags=4163<UP,BROADCAST,RUNNING,MULTICAST>  mtu 1500\n")
	fmt.Fprintf(&b, "        inet %s  netmask %s  broadcast %s\n", p.IP, p.SubnetMask, n.Info.BroadcastAddress)
	fmt.Fprintf(&b, "        ether %s  txqueuelen 1000  (Ethernet)\n", p.MAC)
	b.WriteString("        RX packets 152847  bytes 215847639 (205.8 MiB)\n")
	b.WriteString("        RX errors 0  dropped 0  overruns 0  frame 0\n")
	b.WriteString("        TX packets 98450  bytes 9847562 (9.3 MiB)\n")
	b.WriteString("        TX errors 0  dropped 0 overruns 0  carrier 0  collisions 0")
	return b.String()
}

// ARPTable renders an "arp -a" style report.
func (n *Network) ARPTable() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Interface : %s --- 0xa\n", n.Player.IP)
	b.WriteString("  Adresse Internet      Adresse physique      Type\n")
	fmt.Fprintf(&b, "  %-20s  %-20s  dynamique\n", n.Router.IP, n.Router.MAC)
	for _, d := range n.Devices {
		fmt.Fprintf(&b, "  %-20s  %-20s  dynamique\n", d.IP, d.MAC)
	}
	fmt.Fprintf(&b, "  %-20s  ff-ff-ff-ff-ff-ff     statique", n.Info.BroadcastAddress)
	return b.String()
}

// RouteTable renders a "route print" style report.
func (n *Network) RouteTable() string {
	p := n.Player
	var b strings.Builder
	b.WriteString("===========================================================================\n")
	b.WriteString("Liste d'itineraires actifs :\n")
	b.WriteString("Destination reseau    Masque reseau        Adr. passerelle   Adr. interface Metrique\n")
	fmt.Fprintf(&b, "          0.0.0.0          0.0.0.0      %-15s  %-15s     25\n", n.Router.IP, p.IP)
	b.WriteString("        127.0.0.0        255.0.0.0         Sur place         127.0.0.1     331\n")
	b.WriteString("        127.0.0.1  255.255.255.255         Sur place         127.0.0.1     331\n")
	fmt.Fprintf(&b, "   %s  %s         Sur place      %-15s     281\n", n.Info.NetworkAddress, p.SubnetMask, p.IP)
	fmt.Fprintf(&b, "   %s  255.255.255.255         Sur place      %-15s     281\n", p.IP, p.IP)
	fmt.Fprintf(&b, " %s  255.255.255.255         Sur place      %-15s     281\n", n.Info.BroadcastAddress, p.IP)
	b.WriteString("===========================================================================")
	return b.String()
}

// NormalizeMAC uppercases a MAC address and unifies separators to colons.
func NormalizeMAC(mac string) string {
	return strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(mac)), "-", ":")
}

// Validate compares player-submitted recon answers against the scenario.
// Known keys: ip_address, mac_address, gateway, subnet_mask, device_count,
// router_name. Unknown keys are ignored.
func (n *Network) Validate(submitted map[string]string) map[string]bool {
	results := make(map[string]bool, len(submitted))
	for key, value := range submitted {
		value = strings.TrimSpace(value)
		switch key {
		case "ip_address":
			results[key] = value == n.Player.IP
		case "mac_address":
			results[key] = NormalizeMAC(value) == NormalizeMAC(n.Player.MAC)
		case "gateway":
			results[key] = value == n.Router.IP
		case "subnet_mask":
			results[key] = value == n.Player.SubnetMask
		case "device_count":
			count, err := strconv.Atoi(value)
			results[key] = err == nil && count == n.Info.TotalDevices
		case "router_name":
			results[key] = strings.EqualFold(value, n.Router.Hostname)
		}
	}
	return results
}
