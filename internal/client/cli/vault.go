package cli

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophvault/internal/client/client"
	"github.com/dmitrijs2005/gophvault/internal/common"
	"github.com/dmitrijs2005/gophvault/internal/filex"
	"github.com/dmitrijs2005/gophvault/internal/netx"
	pb "github.com/dmitrijs2005/gophvault/internal/proto"
)

var errNotLoggedIn = errors.New("please login first")

const defaultExportDir = "exports"

var downloadExport = netx.DownloadFromPresignedURL
var writeExport = filex.WritePrivate
var readBackup = os.ReadFile

func (a *App) masterPassword() ([]byte, error) {
	return getPassword("Enter master password", a.out)
}

// load retrieves the vault, treating a missing vault as an empty one.
func (a *App) load(ctx context.Context, masterPassword []byte) (map[string]pb.Credential, error) {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	vault, err := a.client.RetrieveVault(ctx, masterPassword)
	if errors.Is(err, client.ErrNotFound) {
		return map[string]pb.Credential{}, nil
	}
	return vault, err
}

func (a *App) save(ctx context.Context, masterPassword []byte, vault map[string]pb.Credential) error {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	result, err := a.client.StoreVault(ctx, masterPassword, vault)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Vault %s (%d entries)\n", result, len(vault))
	return nil
}

func (a *App) Show(ctx context.Context) error {
	if !a.isLoggedIn() {
		return a.report(errNotLoggedIn)
	}

	mp, err := a.masterPassword()
	if err != nil {
		return a.report(err)
	}
	defer common.WipeByteArray(mp)

	vault, err := a.load(ctx, mp)
	if err != nil {
		return a.report(err)
	}

	if len(vault) == 0 {
		fmt.Fprintln(a.out, "Vault is empty")
		return nil
	}

	for _, domain := range slices.Sorted(maps.Keys(vault)) {
		c := vault[domain]
		fmt.Fprintf(a.out, "%s\t%s\t%s\n", domain, c.Username, c.Password)
	}
	return nil
}

// Add inserts or replaces the credential for one domain.
func (a *App) Add(ctx context.Context) error {
	if !a.isLoggedIn() {
		return a.report(errNotLoggedIn)
	}

	domain, err := getSimpleText(a.reader, "Enter domain", a.out)
	if err != nil {
		return a.report(err)
	}
	if strings.TrimSpace(domain) == "" {
		return a.report(errors.New("domain must not be empty"))
	}

	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return a.report(err)
	}

	password, err := getPassword("Enter site password", a.out)
	if err != nil {
		return a.report(err)
	}
	defer common.WipeByteArray(password)

	mp, err := a.masterPassword()
	if err != nil {
		return a.report(err)
	}
	defer common.WipeByteArray(mp)

	vault, err := a.load(ctx, mp)
	if err != nil {
		return a.report(err)
	}

	vault[domain] = pb.Credential{Username: username, Password: string(password)}
	return a.report(a.save(ctx, mp, vault))
}

func (a *App) Remove(ctx context.Context) error {
	if !a.isLoggedIn() {
		return a.report(errNotLoggedIn)
	}

	domain, err := getSimpleText(a.reader, "Enter domain", a.out)
	if err != nil {
		return a.report(err)
	}

	mp, err := a.masterPassword()
	if err != nil {
		return a.report(err)
	}
	defer common.WipeByteArray(mp)

	vault, err := a.load(ctx, mp)
	if err != nil {
		return a.report(err)
	}

	if _, ok := vault[domain]; !ok {
		fmt.Fprintf(a.out, "No entry for %s\n", domain)
		return nil
	}

	delete(vault, domain)
	return a.report(a.save(ctx, mp, vault))
}

// Export asks the server for a download link of the sealed vault and
// saves the envelope locally. It stays encrypted under the master password.
func (a *App) Export(ctx context.Context) error {
	if !a.isLoggedIn() {
		return a.report(errNotLoggedIn)
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	url, err := a.client.ExportVault(ctx)
	if err != nil {
		return a.report(err)
	}
	fmt.Fprintf(a.out, "Encrypted vault export (link valid for a limited time):\n%s\n", url)

	data, err := downloadExport(ctx, url)
	if err != nil {
		return a.report(fmt.Errorf("download export: %w", err))
	}

	return a.report(a.writeEnvelope(data))
}

// Backup saves the sealed vault straight from the server, without going
// through backup storage.
func (a *App) Backup(ctx context.Context) error {
	if !a.isLoggedIn() {
		return a.report(errNotLoggedIn)
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	envelope, err := a.client.FetchEnvelope(ctx)
	if err != nil {
		return a.report(err)
	}
	return a.report(a.writeEnvelope([]byte(envelope)))
}

// Restore uploads a file written by Backup or Export. The server accepts it
// only if it opens under the master password.
func (a *App) Restore(ctx context.Context) error {
	if !a.isLoggedIn() {
		return a.report(errNotLoggedIn)
	}

	path, err := getSimpleText(a.reader, "Enter backup file", a.out)
	if err != nil {
		return a.report(err)
	}
	path = strings.TrimSpace(path)
	data, err := readBackup(path)
	if err != nil {
		return a.report(err)
	}

	mp, err := a.masterPassword()
	if err != nil {
		return a.report(err)
	}
	defer common.WipeByteArray(mp)

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	result, err := a.client.PutEnvelope(ctx, mp, strings.TrimSpace(string(data)))
	if err != nil {
		return a.report(err)
	}
	fmt.Fprintf(a.out, "Vault %s from %s\n", result, path)
	return nil
}

func (a *App) writeEnvelope(data []byte) error {
	name := fmt.Sprintf("vault-%s.enc", time.Now().UTC().Format("20060102T150405Z"))
	path, err := writeExport(a.exportDir(), name, data)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Saved to %s\n", path)
	return nil
}

func (a *App) exportDir() string {
	if a.config == nil || a.config.ExportDir == "" {
		return defaultExportDir
	}
	return a.config.ExportDir
}
