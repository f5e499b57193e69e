package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ksyq12/vhostsync/internal/address"
	"github.com/ksyq12/vhostsync/internal/hosts"
	"github.com/ksyq12/vhostsync/internal/input"
	"github.com/ksyq12/vhostsync/internal/output"
)

var (
	hostsIP        string
	updateIP       string
	hostsNewDomain string
	forceRemove    bool
)

var hostsCmd = &cobra.Command{
	Use:   "hosts",
	Short: "Inspect and edit the host table",
	Long: `Inspect and edit the system host table (/etc/hosts or the Windows
equivalent). Lines that are not IPv4 entries, such as comments and IPv6
mappings, are never touched.`,
}

var hostsListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List host table entries",
	Args:    cobra.NoArgs,
	RunE:    runHostsList,
}

var hostsGetCmd = &cobra.Command{
	Use:   "get <domain>",
	Short: "Print the address a domain is mapped to",
	Args:  cobra.ExactArgs(1),
	RunE:  runHostsGet,
}

var hostsAddCmd = &cobra.Command{
	Use:   "add <domain>",
	Short: "Map a domain to an address",
	Long: `Map a domain to an address. Fails if the domain is already mapped.

Examples:
  vhostsync hosts add blog.test
  vhostsync hosts add api.test --ip 10.0.0.5`,
	Args: cobra.ExactArgs(1),
	RunE: runHostsAdd,
}

var hostsRemoveCmd = &cobra.Command{
	Use:     "remove <domain>",
	Aliases: []string{"rm"},
	Short:   "Remove a domain's entry",
	Args:    cobra.ExactArgs(1),
	RunE:    runHostsRemove,
}

var hostsUpdateCmd = &cobra.Command{
	Use:   "update <domain>",
	Short: "Change a domain's address or name",
	Long: `Replace a domain's entry. The old line is removed and a new one is
appended at the end of the table.

Examples:
  vhostsync hosts update api.test --ip 10.0.0.9
  vhostsync hosts update api.test --domain api2.test`,
	Args: cobra.ExactArgs(1),
	RunE: runHostsUpdate,
}

func init() {
	hostsAddCmd.Flags().StringVar(&hostsIP, "ip", "", "Address (default 127.0.0.1)")
	hostsRemoveCmd.Flags().BoolVarP(&forceRemove, "force", "f", false, "Remove without confirmation")
	hostsUpdateCmd.Flags().StringVar(&updateIP, "ip", "", "New address (default: keep)")
	hostsUpdateCmd.Flags().StringVar(&hostsNewDomain, "domain", "", "New domain name (default: keep)")

	hostsCmd.AddCommand(hostsListCmd, hostsGetCmd, hostsAddCmd, hostsRemoveCmd, hostsUpdateCmd)
	rootCmd.AddCommand(hostsCmd)
}

// hostItem is the --json shape of an entry
type hostItem struct {
	Domain  string   `json:"domain"`
	Address string   `json:"address"`
	Aliases []string `json:"aliases,omitempty"`
}

func runHostsList(cmd *cobra.Command, args []string) error {
	f, err := loadHostFile()
	if err != nil {
		return err
	}
	entries, err := f.List()
	if err != nil {
		return err
	}

	items := make([]hostItem, 0, len(entries))
	for _, e := range entries {
		items = append(items, hostItem{Domain: e.Domain, Address: e.Address.String(), Aliases: e.Aliases})
	}

	if jsonOutput {
		return output.JSON(items)
	}
	if len(items) == 0 {
		output.Info("No entries in %s", f.Path)
		return nil
	}

	rows := make([][]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, []string{it.Domain, it.Address, strings.Join(it.Aliases, " ")})
	}
	output.Table([]string{"DOMAIN", "ADDRESS", "ALIASES"}, rows)
	return nil
}

func runHostsGet(cmd *cobra.Command, args []string) error {
	f, err := loadHostFile()
	if err != nil {
		return err
	}
	addr, err := f.Lookup(args[0])
	if err != nil {
		return err
	}

	if jsonOutput {
		return output.JSON(hostItem{Domain: args[0], Address: addr.String()})
	}
	output.Print("%s", addr)
	return nil
}

func parseIP(text string) (address.Address, error) {
	if text == "" {
		return address.Loopback(), nil
	}
	return address.Parse(text)
}

func runHostsAdd(cmd *cobra.Command, args []string) error {
	domain := args[0]
	addr, err := parseIP(hostsIP)
	if err != nil {
		return err
	}

	f, err := loadHostFile()
	if err != nil {
		return err
	}
	if err := requireRoot(); err != nil {
		return err
	}

	if err := f.Add(hosts.NewEntry(addr, domain)); err != nil {
		return err
	}

	result := newSuccessResult(domain, "added")
	result.Address = addr.String()
	return outputResult(result, "Mapped %s to %s", domain, addr)
}

func runHostsRemove(cmd *cobra.Command, args []string) error {
	domain := args[0]

	f, err := loadHostFile()
	if err != nil {
		return err
	}
	if err := requireRoot(); err != nil {
		return err
	}

	// Fail before prompting when there is nothing to remove
	if _, err := f.Lookup(domain); err != nil {
		return err
	}

	if !forceRemove {
		if jsonOutput {
			return fmt.Errorf("--json needs --force, the confirmation prompt is interactive")
		}
		ok, err := input.Confirm(deps.StdinReader, output.Writer(),
			fmt.Sprintf("Remove %s from %s?", domain, f.Path))
		if err != nil {
			return err
		}
		if !ok {
			output.Info("Removal cancelled")
			return nil
		}
	}

	if err := f.Remove(domain); err != nil {
		return err
	}
	return outputResult(newSuccessResult(domain, "removed"), "Removed %s", domain)
}

func runHostsUpdate(cmd *cobra.Command, args []string) error {
	domain := args[0]
	if updateIP == "" && hostsNewDomain == "" {
		return fmt.Errorf("nothing to update: pass --ip and/or --domain")
	}

	f, err := loadHostFile()
	if err != nil {
		return err
	}
	if err := requireRoot(); err != nil {
		return err
	}

	addr, err := f.Lookup(domain)
	if err != nil {
		return err
	}
	if updateIP != "" {
		if addr, err = address.Parse(updateIP); err != nil {
			return err
		}
	}
	newDomain := domain
	if hostsNewDomain != "" {
		newDomain = hostsNewDomain
	}

	if err := f.Update(domain, hosts.NewEntry(addr, newDomain)); err != nil {
		return err
	}

	result := newSuccessResult(newDomain, "updated")
	result.Address = addr.String()
	return outputResult(result, "Mapped %s to %s", newDomain, addr)
}
