package automation

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/input"
	"github.com/go-rod/rod/lib/launcher"
)

// DownloadInventoryExport signs into the hospital reporting portal and
// downloads the current inventory export workbook into saveDir. The portal
// has no API; the export only exists behind its report screen, so this
// drives a real browser the same way a user would.
func DownloadInventoryExport(portalURL, userID, password, saveDir string) (string, error) {
	if portalURL == "" {
		return "", fmt.Errorf("portal URL is not configured")
	}
	if _, err := os.Stat(saveDir); os.IsNotExist(err) {
		if err := os.MkdirAll(saveDir, 0755); err != nil {
			return "", fmt.Errorf("failed to create download folder: %v", err)
		}
	}

	// Leakless(false): some endpoint-protection tools quarantine the
	// leakless helper binary.
	u := launcher.New().
		Headless(false).
		Leakless(false).
		MustLaunch()

	browser := rod.New().ControlURL(u).MustConnect()
	defer browser.MustClose()

	fmt.Println("Opening reporting portal...")
	page := browser.MustPage(portalURL)
	page.MustWaitStable()

	fmt.Println("Signing in...")
	if err := rod.Try(func() {
		page.MustElement("[name='username']").MustInput(userID)
	}); err != nil {
		return "", fmt.Errorf("username field not found: %v", err)
	}
	if err := rod.Try(func() {
		page.MustElement("[name='password']").MustInput(password)
	}); err != nil {
		return "", fmt.Errorf("password field not found: %v", err)
	}

	loginBtn, err := page.ElementR("input, button", "เข้าสู่ระบบ")
	if err == nil {
		loginBtn.MustClick()
	} else {
		page.KeyActions().Press(input.Enter).MustDo()
	}
	page.MustWaitStable()

	fmt.Println("Opening the inventory report menu...")
	if err := rod.Try(func() {
		page.MustElementR("a, span, div", "รายงานสินค้าคงคลัง").MustClick()
	}); err != nil {
		return "", fmt.Errorf("inventory report menu not found (login may have failed): %v", err)
	}
	page.MustWaitStable()

	fmt.Println("Requesting the export...")
	wait := browser.MustWaitDownload()
	if err := rod.Try(func() {
		page.MustElementR("a, button", "Excel").MustClick()
	}); err != nil {
		return "", fmt.Errorf("export button not found: %v", err)
	}

	data := wait()
	if len(data) == 0 {
		return "", fmt.Errorf("portal returned an empty download")
	}

	name := fmt.Sprintf("inventory_%s.xlsx", time.Now().Format("20060102_150405"))
	savePath := filepath.Join(saveDir, name)
	if err := os.WriteFile(savePath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to save download: %v", err)
	}

	fmt.Println("Saved " + strings.TrimPrefix(savePath, "./"))
	return savePath, nil
}
