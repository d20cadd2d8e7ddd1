package main

import (
	"log"
	"net/http"
	"os/exec"
	"runtime"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"medstock/config"
	"medstock/loader"
	"medstock/stores"
	"medstock/units"
)

func main() {
	log.Println("Connecting to database...")
	dbConn, err := sqlx.Open("sqlite3", "./medstock.db?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		log.Fatalf("db open error: %v", err)
	}
	defer dbConn.Close()
	log.Println("Database connection successful.")

	if _, err := config.LoadConfig(); err != nil {
		log.Printf("WARN: Failed to load config file: %v. Using defaults.", err)
	}

	if err := loader.InitDatabase(dbConn); err != nil {
		log.Fatalf("Database initialization failed: %v", err)
	}
	log.Println("Database initialization complete.")

	if _, err := units.LoadUnitsFile("masters/UNITS.CSV"); err != nil {
		log.Printf("WARN: Failed to load UNITS.CSV: %v. Unit names may not display correctly.", err)
	} else {
		log.Println("Unit master loaded successfully.")
	}

	if _, err := stores.LoadStoresFile("masters/stores.yaml"); err != nil {
		log.Printf("WARN: Failed to load stores.yaml: %v. Store names may not display correctly.", err)
	} else {
		log.Println("Store master loaded successfully.")
	}

	mux := http.NewServeMux()

	mux.Handle("/static/", http.StripPrefix("/static/",
		http.FileServer(http.Dir("./static"))))

	// The UI is a prebuilt single-page app; every non-API path serves its
	// entry point and the app routes client-side.
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./static/index.html")
	})

	SetupRoutes(mux, dbConn)

	port := ":8080"
	log.Printf("Starting server on http://localhost%s", port)

	openBrowser("http://localhost:8080")

	if err := http.ListenAndServe(port, mux); err != nil {
		log.Fatalf("server start error: %v", err)
	}
}

func openBrowser(url string) {
	var err error
	switch runtime.GOOS {
	case "windows":
		err = exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	case "darwin":
		err = exec.Command("open", url).Start()
	default:
		err = exec.Command("xdg-open", url).Start()
	}
	if err != nil {
		log.Printf("failed to open browser: %v", err)
	}
}
