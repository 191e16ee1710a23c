package shell

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/cyberhero-game/cyberhero/internal/netsim"
)

// State is the mutable terminal state the mission tracker reads.
type State struct {
	History           *History
	BlockedPorts      map[int]bool
	IsolatedDevices   map[string]bool // normalized MAC
	DiscoveredDevices map[string]bool // device name
	ScannedTargets    map[string]bool // nmap target IPs
	DownloadedFiles   map[string]bool
	NetworkScanned    bool
}

// NewState returns an empty terminal state.
func NewState() *State {
	return &State{
		History:           &History{},
		BlockedPorts:      map[int]bool{},
		IsolatedDevices:   map[string]bool{},
		DiscoveredDevices: map[string]bool{},
		ScannedTargets:    map[string]bool{},
		DownloadedFiles:   map[string]bool{},
	}
}

// Result is the outcome of one executed line.
type Result struct {
	Output string
	Clear  bool
	Quit   bool
}

// Executor runs terminal commands against the simulated networks.
type Executor struct {
	Net         *netsim.Network
	Audit       *netsim.AuditNetwork
	Packets     []netsim.DisplayPacket
	State       *State
	Educational bool
}

// NewExecutor wires an executor over the fixed home network and the
// generated audit network.
func NewExecutor(net *netsim.Network, audit *netsim.AuditNetwork, packets []netsim.DisplayPacket) *Executor {
	return &Executor{
		Net:     net,
		Audit:   audit,
		Packets: packets,
		State:   NewState(),
	}
}

// Banner is printed when the terminal opens.
const Banner = "CyberHero Terminal v2.7.3\nTapez 'help' pour la liste des commandes.\n"

// KnownCommands lists every command name the terminal accepts.
var KnownCommands = []string{
	"allow", "arp", "audit", "block", "check", "clear", "download", "exit",
	"help", "ifconfig", "ipconfig", "isolate", "nmap", "open", "route", "scan",
	"show",
}

// Execute parses and runs one input line.
func (e *Executor) Execute(line string) Result {
	cmd := Parse(line)
	if cmd.Name == "" {
		return Result{}
	}
	e.State.History.Add(line)

	switch cmd.Name {
	case "help":
		return Result{Output: helpText}
	case "clear":
		return Result{Clear: true}
	case "exit":
		return Result{Quit: true}
	case "ipconfig":
		if len(cmd.Args) > 0 && strings.EqualFold(cmd.Args[0], "/all") {
			return Result{Output: e.Net.IPConfigAll()}
		}
		return Result{Output: e.Net.IPConfig()}
	case "ifconfig":
		return Result{Output: e.Net.IfConfig()}
	case "arp":
		if cmd.HasOption("-a") {
			return Result{Output: e.Net.ARPTable()}
		}
		return Result{Output: "Usage : arp -a"}
	case "route":
		if (len(cmd.Args) > 0 && strings.EqualFold(cmd.Args[0], "print")) || cmd.HasOption("-n") {
			return Result{Output: e.Net.RouteTable()}
		}
		return Result{Output: "Usage : route print"}
	case "scan":
		return e.scan(cmd)
	case "show":
		return e.show(cmd)
	case "block":
		return e.block(cmd)
	case "allow":
		return e.allow(cmd)
	case "isolate":
		return e.isolate(cmd)
	case "open":
		return e.openPacket(cmd)
	case "check":
		return e.checkLogs(cmd)
	case "audit":
		return e.audit(cmd)
	case "nmap":
		return e.nmap(cmd)
	case "download":
		return e.download(cmd)
	default:
		return e.unknown(cmd.Name)
	}
}

const helpText = `Commandes disponibles :
  help                     Affiche cette aide
  clear                    Efface l'ecran
  ipconfig [/all]          Configuration IP de la machine
  ifconfig                 Configuration IP (style Unix)
  arp -a                   Table ARP
  route print              Table de routage
  scan network             Scanne le reseau local
  show devices             Appareils decouverts
  show ipconfig            Resume de la configuration
  block port <N>           Bloque un port sur le pare-feu
  allow port <N>           Debloque un port
  isolate device <MAC>     Isole un appareil du reseau
  open packet <ID>         Affiche le detail d'un paquet
  check logs               Journaux systeme
  audit system             Verifie la securite du reseau
  nmap <cible>             Scanner de ports
  download <cible> <fich.> Telecharge un fichier d'une cible scannee
  exit                     Quitte le terminal`

func (e *Executor) unknown(name string) Result {
	out := fmt.Sprintf("'%s' n'est pas reconnu comme commande.", name)
	if sugg := Suggest(name, KnownCommands); len(sugg) > 0 {
		out += fmt.Sprintf("\nVouliez-vous dire : %s ?", strings.Join(sugg, ", "))
	} else {
		out += "\nTapez 'help' pour la liste des commandes."
	}
	return Result{Output: out}
}

func (e *Executor) scan(cmd Command) Result {
	if len(cmd.Args) == 0 || !strings.EqualFold(cmd.Args[0], "network") {
		return Result{Output: "Usage : scan network"}
	}
	if e.Audit == nil {
		return Result{Output: "Erreur : aucun reseau a scanner."}
	}

	e.State.NetworkScanned = true

	var b strings.Builder
	fmt.Fprintf(&b, "Scan du reseau %s en cours...\n\n", e.Audit.Subnet)
	b.WriteString("  IP               MAC                Appareil         Ports ouverts\n")
	b.WriteString("  ---------------  -----------------  ---------------  -------------\n")
	for _, d := range e.Audit.Devices {
		e.State.DiscoveredDevices[d.Name] = true
		fmt.Fprintf(&b, "  %-15s  %-17s  %-15s  %s\n", d.IP, d.MAC, d.Name, joinPorts(d.OpenPorts))
	}
	fmt.Fprintf(&b, "\n%d appareils detectes.", len(e.Audit.Devices))

	if len(e.Audit.RiskyPorts) > 0 {
		b.WriteString("\n\n[!] ATTENTION : services a risque detectes :")
		for _, r := range e.Audit.RiskyPorts {
			fmt.Fprintf(&b, "\n    %s (%s) expose le port %d (%s)", r.Device, r.IP, r.Port, r.Service)
		}
	}
	return Result{Output: b.String()}
}

func joinPorts(ports []int) string {
	parts := make([]string, len(ports))
	for i, p := range ports {
		parts[i] = strconv.Itoa(p)
	}
	return strings.Join(parts, ", ")
}

func (e *Executor) show(cmd Command) Result {
	if len(cmd.Args) == 0 {
		return Result{Output: "Usage : show devices | show ipconfig"}
	}
	switch strings.ToLower(cmd.Args[0]) {
	case "ipconfig":
		return Result{Output: e.Net.IPConfig()}
	case "devices":
		if !e.State.NetworkScanned {
			return Result{Output: "Aucun appareil decouvert. Lancez 'scan network' d'abord."}
		}
		var b strings.Builder
		b.WriteString("Appareils decouverts :\n")
		for _, d := range e.Audit.Devices {
			status := "connecte"
			if e.State.IsolatedDevices[netsim.NormalizeMAC(d.MAC)] {
				status = "ISOLE"
			}
			fmt.Fprintf(&b, "  %-15s  %-17s  %-15s  %s\n", d.IP, d.MAC, d.Name, status)
		}
		return Result{Output: strings.TrimRight(b.String(), "\n")}
	default:
		return Result{Output: "Usage : show devices | show ipconfig"}
	}
}

func (e *Executor) block(cmd Command) Result {
	port, ok := portArg(cmd)
	if !ok {
		return Result{Output: "Usage : block port <numero>"}
	}
	if e.State.BlockedPorts[port] {
		return Result{Output: fmt.Sprintf("Le port %d est deja bloque.", port)}
	}
	e.State.BlockedPorts[port] = true
	out := fmt.Sprintf("Regle pare-feu ajoutee : port %d BLOQUE sur tout le reseau.", port)
	if port == netsim.TelnetPort {
		out += "\n[OK] Telnet n'est plus accessible aux attaquants."
	}
	return Result{Output: out}
}

func (e *Executor) allow(cmd Command) Result {
	port, ok := portArg(cmd)
	if !ok {
		return Result{Output: "Usage : allow port <numero>"}
	}
	if !e.State.BlockedPorts[port] {
		return Result{Output: fmt.Sprintf("Le port %d n'est pas bloque.", port)}
	}
	delete(e.State.BlockedPorts, port)
	return Result{Output: fmt.Sprintf("Regle pare-feu retiree : port %d autorise.", port)}
}

func portArg(cmd Command) (int, bool) {
	if len(cmd.Args) < 2 || !strings.EqualFold(cmd.Args[0], "port") {
		return 0, false
	}
	port, err := strconv.Atoi(cmd.Args[1])
	if err != nil || port < 1 || port > 65535 {
		return 0, false
	}
	return port, true
}

func (e *Executor) isolate(cmd Command) Result {
	if len(cmd.Args) < 2 || !strings.EqualFold(cmd.Args[0], "device") {
		return Result{Output: "Usage : isolate device <MAC>"}
	}
	mac := netsim.NormalizeMAC(cmd.Args[1])

	for i, d := range e.Audit.Devices {
		if netsim.NormalizeMAC(d.MAC) != mac {
			continue
		}
		if e.State.IsolatedDevices[mac] {
			return Result{Output: fmt.Sprintf("%s est deja isole.", d.Name)}
		}
		e.State.IsolatedDevices[mac] = true
		e.Audit.Devices[i].Isolated = true
		return Result{Output: fmt.Sprintf("%s (%s) a ete ISOLE du reseau.", d.Name, d.IP)}
	}
	return Result{Output: fmt.Sprintf("Aucun appareil avec l'adresse MAC %s.", cmd.Args[1])}
}

func (e *Executor) openPacket(cmd Command) Result {
	if len(cmd.Args) < 2 || !strings.EqualFold(cmd.Args[0], "packet") {
		return Result{Output: "Usage : open packet <ID>"}
	}
	id := strings.ToUpper(cmd.Args[1])
	for _, p := range e.Packets {
		if p.ID != id {
			continue
		}
		var b strings.Builder
		fmt.Fprintf(&b, "Paquet %s (%s)\n", p.ID, p.Timestamp)
		fmt.Fprintf(&b, "  Source      : %s:%d\n", p.SrcIP, p.SrcPort)
		fmt.Fprintf(&b, "  Destination : %s:%d\n", p.DstIP, p.DstPort)
		fmt.Fprintf(&b, "  Protocole   : %s\n", p.Protocol)
		fmt.Fprintf(&b, "  Taille      : %d octets\n", p.Length)
		fmt.Fprintf(&b, "  Contenu     : %s", p.Payload)
		if p.Suspicious {
			b.WriteString("\n  [!] Paquet SUSPECT")
		}
		return Result{Output: b.String()}
	}
	return Result{Output: fmt.Sprintf("Paquet %s introuvable.", id)}
}

func (e *Executor) checkLogs(cmd Command) Result {
	if len(cmd.Args) == 0 || !strings.EqualFold(cmd.Args[0], "logs") {
		return Result{Output: "Usage : check logs"}
	}
	var b strings.Builder
	b.WriteString("=== Journaux systeme ===\n")
	b.WriteString("10:02:14  INFO   Bail DHCP renouvele pour 192.168.1.120\n")
	b.WriteString("10:05:31  INFO   Synchronisation NTP reussie\n")
	for _, r := range e.Audit.RiskyPorts {
		if e.State.BlockedPorts[r.Port] {
			continue
		}
		fmt.Fprintf(&b, "10:08:47  WARN   Tentative de connexion Telnet vers %s (%s)\n", r.IP, r.Device)
	}
	for _, d := range e.Audit.UntrustedDevices {
		if e.State.IsolatedDevices[netsim.NormalizeMAC(d.MAC)] {
			continue
		}
		fmt.Fprintf(&b, "10:12:03  ALERT  Appareil inconnu actif : %s (%s)\n", d.IP, d.MAC)
	}
	return Result{Output: strings.TrimRight(b.String(), "\n")}
}

func (e *Executor) audit(cmd Command) Result {
	if len(cmd.Args) == 0 || !strings.EqualFold(cmd.Args[0], "system") {
		return Result{Output: "Usage : audit system"}
	}

	var issues []string
	for _, r := range e.Audit.RiskyPorts {
		if !e.State.BlockedPorts[r.Port] {
			issues = append(issues, fmt.Sprintf("Port %d (%s) toujours ouvert sur %s", r.Port, r.Service, r.Device))
		}
	}
	for _, d := range e.Audit.UntrustedDevices {
		if !e.State.IsolatedDevices[netsim.NormalizeMAC(d.MAC)] {
			issues = append(issues, fmt.Sprintf("Appareil non identifie toujours connecte : %s (%s)", d.Name, d.MAC))
		}
	}
	sort.Strings(issues)

	var b strings.Builder
	b.WriteString("Audit de securite en cours...\n\n")
	if len(issues) == 0 {
		b.WriteString("=== RESEAU SECURISE ===\n")
		b.WriteString("Toutes les menaces ont ete neutralisees. Excellent travail !")
		return Result{Output: b.String()}
	}
	fmt.Fprintf(&b, "%d probleme(s) restant(s) :\n", len(issues))
	for _, issue := range issues {
		fmt.Fprintf(&b, "  [!] %s\n", issue)
	}
	return Result{Output: strings.TrimRight(b.String(), "\n")}
}

// Secured reports whether the audit network passes the final audit.
func (e *Executor) Secured() bool {
	for _, r := range e.Audit.RiskyPorts {
		if !e.State.BlockedPorts[r.Port] {
			return false
		}
	}
	for _, d := range e.Audit.UntrustedDevices {
		if !e.State.IsolatedDevices[netsim.NormalizeMAC(d.MAC)] {
			return false
		}
	}
	return true
}
