package shell

import (
	"fmt"
	"net"
	"strconv"
	"strings"
)

type nmapPort struct {
	Port    int
	Service string
	Version string
}

type nmapTarget struct {
	Hostname string
	OS       string
	Ports    []nmapPort
	Files    []string // downloadable artifacts revealed by the scan
}

// Scan reports for the scripted targets. Anything else valid gets a
// generic host-down response.
var nmapTargets = map[string]nmapTarget{
	"192.168.1.100": {
		Hostname: "cafe-wifi.local",
		OS:       "Linux 4.15 (Ubuntu 18.04)",
		Ports: []nmapPort{
			{22, "ssh", "OpenSSH 7.6p1"},
			{80, "http", "Apache httpd 2.4.29"},
			{3306, "mysql", "MySQL 5.7.33"},
		},
		Files: []string{"traffic.pcap", "system.log"},
	},
	"192.168.1.1": {
		Hostname: "router.local",
		OS:       "Linux 2.6 (embedded)",
		Ports: []nmapPort{
			{80, "http", "lighttpd 1.4.32"},
			{443, "https", "lighttpd 1.4.32"},
		},
	},
	"10.0.0.50": {
		Hostname: "server.internal",
		OS:       "Linux 5.4 (Debian 10)",
		Ports: []nmapPort{
			{22, "ssh", "OpenSSH 7.9p1"},
			{8080, "http-proxy", "nginx 1.14.2"},
		},
	},
}

func (e *Executor) nmap(cmd Command) Result {
	if len(cmd.Args) == 0 {
		return Result{Output: "Usage : nmap [-p port] [-A] <cible>"}
	}
	target := cmd.Args[len(cmd.Args)-1]
	if net.ParseIP(target) == nil {
		return Result{Output: fmt.Sprintf("nmap : impossible de resoudre \"%s\"", target)}
	}

	t, known := nmapTargets[target]
	if !known {
		return Result{Output: fmt.Sprintf(
			"Starting Nmap 7.80\nNote: Host %s seems down.\nNmap done: 1 IP address (0 hosts up) scanned", target)}
	}
	e.State.ScannedTargets[target] = true

	ports := t.Ports
	if filter := cmd.Option("-p"); filter != "" {
		want, err := strconv.Atoi(filter)
		if err != nil {
			return Result{Output: fmt.Sprintf("nmap : specification de port invalide : %s", filter)}
		}
		ports = nil
		for _, p := range t.Ports {
			if p.Port == want {
				ports = append(ports, p)
			}
		}
	}

	var b strings.Builder
	b.WriteString("Starting Nmap 7.80\n")
	fmt.Fprintf(&b, "Nmap scan report for %s (%s)\n", t.Hostname, target)
	b.WriteString("Host is up (0.0042s latency).\n\n")
	if len(ports) == 0 {
		b.WriteString("All scanned ports are closed.\n")
	} else {
		b.WriteString("PORT      STATE  SERVICE     VERSION\n")
		for _, p := range ports {
			fmt.Fprintf(&b, "%-9s %-6s %-11s %s\n", fmt.Sprintf("%d/tcp", p.Port), "open", p.Service, p.Version)
		}
	}
	if cmd.HasOption("-A") {
		fmt.Fprintf(&b, "\nOS details: %s\n", t.OS)
	}
	if len(t.Files) > 0 {
		b.WriteString("\nFichiers accessibles sur la cible :\n")
		for _, f := range t.Files {
			fmt.Fprintf(&b, "  %s\n", f)
		}
	}
	b.WriteString("\nNmap done: 1 IP address (1 host up) scanned")

	if e.Educational {
		b.WriteString("\n\n[Note pedagogique] Un scan de ports revele les services qu'une machine")
		b.WriteString("\nexpose. Dans la vraie vie, ne scannez que des machines qui vous appartiennent.")
	}
	return Result{Output: b.String()}
}

// NmapFiles returns the artifacts a successful scan of the target exposes.
func NmapFiles(target string) []string {
	return nmapTargets[target].Files
}

var nmapFileSizes = map[string]string{
	"traffic.pcap": "2,4 Mo",
	"system.log":   "156 Ko",
}

func (e *Executor) download(cmd Command) Result {
	if len(cmd.Args) < 2 {
		return Result{Output: "Usage : download <cible> <fichier>\nExemple : download 192.168.1.100 traffic.pcap"}
	}
	target, file := cmd.Args[0], cmd.Args[1]

	files := NmapFiles(target)
	if len(files) == 0 {
		return Result{Output: fmt.Sprintf(
			"Erreur : cible '%s' inconnue.\nScannez d'abord une cible avec nmap pour decouvrir ses fichiers.", target)}
	}
	if !e.State.ScannedTargets[target] {
		return Result{Output: fmt.Sprintf(
			"Erreur : la cible '%s' n'a pas encore ete scannee.\nEssayez : nmap %s", target, target)}
	}

	known := false
	for _, f := range files {
		if f == file {
			known = true
			break
		}
	}
	if !known {
		var b strings.Builder
		fmt.Fprintf(&b, "Erreur : fichier '%s' introuvable sur %s.\n", file, target)
		b.WriteString("Fichiers disponibles sur cette cible :\n")
		for _, f := range files {
			fmt.Fprintf(&b, "  - %s\n", f)
		}
		return Result{Output: strings.TrimRight(b.String(), "\n")}
	}
	if e.State.DownloadedFiles[file] {
		return Result{Output: fmt.Sprintf("Le fichier '%s' est deja telecharge.", file)}
	}
	e.State.DownloadedFiles[file] = true

	var b strings.Builder
	fmt.Fprintf(&b, "Connexion a %s...\n", target)
	fmt.Fprintf(&b, "Transfert de '%s' en cours...\n\n", file)
	b.WriteString(strings.Repeat("█", 40) + " 100%\n\n")
	fmt.Fprintf(&b, "Telechargement termine : %s (%s)", file, nmapFileSizes[file])

	if e.Educational {
		b.WriteString("\n\n[Note pedagogique] Copier des fichiers depuis une machine distante exige")
		b.WriteString("\nun acces autorise. Ici le proprietaire du cafe vous a donne son accord ;")
		b.WriteString("\nne telechargez jamais de donnees sans autorisation explicite.")
	}
	return Result{Output: b.String()}
}
