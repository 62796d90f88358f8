package extract

import (
	"regexp"
	"sync"

	"github.com/cloudflare/ahocorasick"
)

// boilerplatePhrases are site-furniture phrases. A line containing any of
// them is navigation, not a course.
var boilerplatePhrases = []string{
	"cookies", "privacidad", "privacy", "aviso legal", "legal notice",
	"contacto", "contact",
	"matricula", "matrícula", "mapa del sitio", "mapa web", "sitemap",
	"copyright", "iniciar sesión", "iniciar sesion", "login", "log in", "sign in",
	"vida universitaria", "servicios universitarios",
	"escuelas y facultades", "estudios de grado",
	"estudios de posgrado", "oferta académica",
	"oferta academica", "futuro estudiante",
	"traslados e intercambios", "empezar en la universidad",
	":: estudios ::", "datos generales",
}

// metadataPrefixes start module/subject metadata rows of course tables.
var metadataPrefixes = []string{
	"módulo", "modulo", "materia",
	"carácter", "caracter", "ent.", "unid.",
}

// finalPrefixes are rejected again by the cross-source filter.
var finalPrefixes = []string{"módulo", "modulo", "materia"}

// institutionKeywords mark lines naming an organizational unit.
var institutionKeywords = []string{
	"escuela", "facultad", "departamento", "universidad",
	"grado en ", "máster", "master", "doctorado",
	"estructuras de investigación", "estructuras de investigacion",
	"i+d", "i+d+i",
	"school of", "faculty", "department", "university",
}

var (
	// creditVocabulary matches credit, semester and calendar words.
	creditVocabulary = regexp.MustCompile(`\b(ects|cr[eé]ditos|creditos|credits?|semestre|semester|plan|calendario|calendar)\b`)

	// courseSubject matches course-subject words that rescue institution lines.
	courseSubject = regexp.MustCompile(`(?i)(fundamentos|introducción|introduccion|ingenier|arquitect|` +
		`sistemas|bases de datos|redes|matem|física|fisica|` +
		`teoría|teoria|comput|seguridad|cloud|machine|` +
		`visión|vision|iot|robótica|robotica|datos|algorit|software|` +
		`engineer|systems|database|network|math|physics|security|data|algorithm)`)
)

// phraseMatcher finds boilerplate phrases in one pass over a line.
// The underlying automaton keeps match state, so calls are serialized.
type phraseMatcher struct {
	mu sync.Mutex
	m  *ahocorasick.Matcher
}

func newPhraseMatcher(phrases []string) *phraseMatcher {
	return &phraseMatcher{m: ahocorasick.NewStringMatcher(phrases)}
}

func (p *phraseMatcher) contains(lower string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.m.Match([]byte(lower))) > 0
}

var boilerplate = newPhraseMatcher(boilerplatePhrases)
