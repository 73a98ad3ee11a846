package main

import (
	"context"
	"crypto/tls"
	"io"
	"log"
	"log/syslog"
	"net"
	"net/http"
	"os"
	"path"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"github.com/jellofin/jellofin-server/collection"
	"github.com/jellofin/jellofin-server/database"
	"github.com/jellofin/jellofin-server/imageresize"
	"github.com/jellofin/jellofin-server/jellyfin"
	"github.com/jellofin/jellofin-server/muxnormalizer"
	"github.com/jellofin/jellofin-server/notflix"
)

func main() {
	config, err := loadConfig()
	if err != nil {
		log.Fatal(err)
	}
	setLogOutput(config.Logfile)

	ctx := context.Background()

	repo, err := database.New(&database.Options{
		Filename: config.Database.Sqlite.Filename,
	})
	if err != nil {
		log.Fatalf("database.New: %s", err)
	}
	repo.StartBackgroundJobs(ctx)

	collections := collection.New(&collection.Options{
		Repo: repo,
	})
	for _, c := range config.Collections {
		if err := collections.AddCollection(c.ID, c.Name, c.Type,
			c.Directory, c.BaseUrl, c.HlsServer); err != nil {
			log.Fatalf("collection %q: %s", c.Name, err)
		}
	}

	resizer := imageresize.New(imageresize.Options{
		Cachedir: path.Join(config.Cachedir, "images"),
	})
	go resizer.Background(ctx)

	r := mux.NewRouter()

	n := notflix.New(&notflix.Options{
		Collections:  collections,
		Imageresizer: resizer,
		Appdir:       config.Appdir,
	})
	n.RegisterHandlers(r)

	j := jellyfin.New(&jellyfin.Options{
		Collections:        collections,
		Repo:               repo,
		Imageresizer:       resizer,
		ServerID:           config.Jellyfin.ServerID,
		ServerName:         config.Jellyfin.ServerName,
		AutoRegister:       config.Jellyfin.AutoRegister,
		ImageQualityPoster: config.Jellyfin.ImageQualityPoster,
	})
	j.RegisterHandlers(r)

	if config.Appdir != "" {
		r.PathPrefix("/").Handler(http.FileServer(http.Dir(config.Appdir)))
	}

	normalizer, err := muxnormalizer.New(r)
	if err != nil {
		log.Fatalf("muxnormalizer.New: %s", err)
	}
	server := httpLog(normalizer.Middleware(r))

	log.Printf("Scanning collections..")
	collections.Init(ctx)
	go collections.Background(ctx)

	addr := net.JoinHostPort(config.Listen.Address, strconv.Itoa(config.Listen.Port))

	if config.Listen.TlsCert != "" && config.Listen.TlsKey != "" {
		kpr, err := newKeypairReloader(config.Listen.TlsCert, config.Listen.TlsKey)
		if err != nil {
			log.Fatalf("error loading keypair: %v", err)
		}
		srv := &http.Server{
			Addr:    addr,
			Handler: server,
			TLSConfig: &tls.Config{
				MinVersion:     tls.VersionTLS13,
				GetCertificate: kpr.getCertificateFunc(),
				// Some media players stall on h2, force http/1.1.
				NextProtos: []string{"http/1.1"},
			},
		}
		log.Printf("Serving HTTPS on %s", addr)
		log.Fatal(srv.ListenAndServeTLS("", ""))
	}
	log.Printf("Serving HTTP on %s", addr)
	log.Fatal(http.ListenAndServe(addr, server))
}

// setLogOutput redirects the standard logger per the logfile config
// key: "syslog", "stdout", "none" or a filename.
func setLogOutput(logfile string) {
	switch logfile {
	case "", "stdout":
	case "syslog":
		logw, err := syslog.New(syslog.LOG_NOTICE, "jellofin")
		if err != nil {
			log.Fatalf("error opening syslog: %v", err)
		}
		log.SetOutput(logw)
	case "none":
		log.SetOutput(io.Discard)
	default:
		f, err := os.OpenFile(logfile, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0666)
		if err != nil {
			log.Fatalf("error opening logfile: %v", err)
		}
		log.SetOutput(f)
	}
}

// keypairReloader re-reads the TLS keypair periodically so certificate
// renewals do not require a restart.
type keypairReloader struct {
	certMu   sync.RWMutex
	cert     *tls.Certificate
	certPath string
	keyPath  string
}

const keypairReloadInterval = 15 * time.Second

func newKeypairReloader(certPath, keyPath string) (*keypairReloader, error) {
	result := &keypairReloader{
		certPath: certPath,
		keyPath:  keyPath,
	}
	cert, err := tls.LoadX509KeyPair(certPath, keyPath)
	if err != nil {
		return nil, err
	}
	result.cert = &cert

	go func() {
		for {
			time.Sleep(keypairReloadInterval)
			if err := result.maybeReload(); err != nil {
				log.Printf("Keeping old TLS certificate because the new one could not be loaded: %v", err)
			}
		}
	}()
	return result, nil
}

func (kpr *keypairReloader) getCertificateFunc() func(*tls.ClientHelloInfo) (*tls.Certificate, error) {
	return func(clientHello *tls.ClientHelloInfo) (*tls.Certificate, error) {
		kpr.certMu.RLock()
		defer kpr.certMu.RUnlock()
		return kpr.cert, nil
	}
}

func (kpr *keypairReloader) maybeReload() error {
	newCert, err := tls.LoadX509KeyPair(kpr.certPath, kpr.keyPath)
	if err != nil {
		return err
	}
	kpr.certMu.Lock()
	defer kpr.certMu.Unlock()
	kpr.cert = &newCert
	return nil
}
