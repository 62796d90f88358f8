package pipeline

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/nao1215/uniscout/internal/browser"
	"github.com/nao1215/uniscout/internal/cache"
	"github.com/nao1215/uniscout/internal/discovery"
	"github.com/nao1215/uniscout/internal/fetcher"
	"github.com/nao1215/uniscout/internal/livingcost"
	"github.com/nao1215/uniscout/internal/matcher"
	"github.com/nao1215/uniscout/internal/model"
	"github.com/nao1215/uniscout/internal/prestige"
)

// network counts every call that would leave the machine.
type network struct {
	searches  atomic.Int32
	pages     atomic.Int32
	downloads atomic.Int32
	launches  atomic.Int32
}

func (n *network) reset() {
	n.searches.Store(0)
	n.pages.Store(0)
	n.downloads.Store(0)
	n.launches.Store(0)
}

func (n *network) total() int32 {
	return n.searches.Load() + n.pages.Load() + n.downloads.Load() + n.launches.Load()
}

type fakeProvider struct {
	net     *network
	results map[string][]string
	panics  string
	// onSearch runs before every search when set.
	onSearch func()
}

func (p *fakeProvider) Name() string { return "fake" }

func (p *fakeProvider) Search(_ context.Context, query string, _ int) ([]string, error) {
	p.net.searches.Add(1)
	if p.onSearch != nil {
		p.onSearch()
	}
	if p.panics != "" && strings.HasPrefix(query, p.panics) {
		panic("search backend exploded")
	}
	for prefix, links := range p.results {
		if strings.HasPrefix(query, prefix) {
			return links, nil
		}
	}
	return nil, discovery.ErrProviderUnavailable
}

type fakeBrowser struct {
	net   *network
	pages map[string]string
}

func (b *fakeBrowser) Content(_ context.Context, url string) (string, error) {
	b.net.pages.Add(1)
	page, ok := b.pages[url]
	if !ok {
		return "", errors.New("net::ERR_NAME_NOT_RESOLVED")
	}
	return page, nil
}

func (b *fakeBrowser) Close() error { return nil }

type fakeLauncher struct {
	browser *fakeBrowser
}

func (l *fakeLauncher) Launch(context.Context) (browser.Session, error) {
	l.browser.net.launches.Add(1)
	return l.browser, nil
}

type fakeDownloader struct {
	net   *network
	docs  map[string]string
	block map[string]bool
	// onBlock runs when a blocked URL is requested.
	onBlock func()
}

func (d *fakeDownloader) Download(ctx context.Context, url string) ([]byte, error) {
	d.net.downloads.Add(1)
	if d.block[url] {
		if d.onBlock != nil {
			d.onBlock()
		}
		<-ctx.Done()
		return nil, ctx.Err()
	}
	doc, ok := d.docs[url]
	if !ok {
		return nil, errors.New("http 404")
	}
	return []byte(doc), nil
}

func plainText(b []byte) (string, error) {
	return string(b), nil
}

// world is a fake internet plus the services wired on top of it.
type world struct {
	net        *network
	provider   *fakeProvider
	browser    *fakeBrowser
	downloader *fakeDownloader
	store      *cache.Store

	mu       sync.Mutex
	estimate func(city string) (model.LivingCostArtifact, error)
}

func newWorld(dir string) (*world, error) {
	store, err := cache.NewStore(dir)
	if err != nil {
		return nil, err
	}
	n := &network{}
	return &world{
		net:        n,
		provider:   &fakeProvider{net: n, results: map[string][]string{}},
		browser:    &fakeBrowser{net: n, pages: map[string]string{}},
		downloader: &fakeDownloader{net: n, docs: map[string]string{}, block: map[string]bool{}},
		store:      store,
	}, nil
}

func (w *world) Estimate(ctx context.Context, city string) (model.LivingCostArtifact, error) {
	w.mu.Lock()
	fn := w.estimate
	w.mu.Unlock()
	if fn != nil {
		return fn(city)
	}
	return livingcost.New().Estimate(ctx, city)
}

func (w *world) services(refresh Refresh) Services {
	return Services{
		Store:   w.store,
		Refresh: refresh,
		NewDiscoverer: func(browser.Browser) Discoverer {
			return discovery.New(w.provider)
		},
		NewFetcher: func(b browser.Browser) ContentFetcher {
			return fetcher.New(b, w.downloader,
				fetcher.WithDocumentReader(plainText),
				fetcher.WithDocumentTimeout(50*time.Millisecond),
				fetcher.WithNavigationTimeout(time.Second),
			)
		},
		NewMatcher: func(s model.MatchingSettings) CourseMatcher {
			return matcher.New(matcher.WithThresholds(matcher.ThresholdsFrom(s)))
		},
		Estimator: w,
		Prestige:  prestige.Lookup,
		Logger:    quietLogger(),
	}
}

func (w *world) run(ctx context.Context, refresh Refresh, insts []model.Institution, mine []string) ([]*model.InstitutionReport, error) {
	reports := NewReports(insts, model.CourseNames(mine), nil)
	bp := NewBatchProcessor(w.services(refresh).Factory(),
		WithLauncher(&fakeLauncher{browser: w.browser}),
		WithBatchLogger(quietLogger()),
	)
	return reports, bp.ProcessBatch(ctx, reports)
}

const upmPlanPage = `<html><body><ul>
<li>Sistemas Operativos</li>
<li>Bases de Datos</li>
<li>Redes de Computadores</li>
</ul></body></html>`

const upmSubjects = "Algoritmos y Estructuras de Datos\nIngeniería del Software\nSistemas Operativos"

var upm = model.Institution{
	Name:             "Universidad Politecnica de Madrid",
	City:             "Madrid",
	ProgramQuery:     "grado ingenieria informatica",
	PreferredDomains: []string{"upm.es"},
}

// seedUPM publishes the UPM program on the fake internet.
func (w *world) seedUPM() {
	w.provider.results[upm.Name] = []string{
		"https://www.upm.es/plan-de-estudios",
		"https://www.upm.es/asignaturas.pdf",
		"https://www.facebook.com/upm",
		"https://www.upm.es/plan-de-estudios",
	}
	w.browser.pages["https://www.upm.es/plan-de-estudios"] = upmPlanPage
	w.downloader.docs["https://www.upm.es/asignaturas.pdf"] = upmSubjects
}

var myCourses = []string{"Sistemas Operativos", "Bases de Datos", "Historia del Arte"}
