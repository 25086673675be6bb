package advpl

import (
	"fmt"
	"regexp"
	"strings"
)

// SourceExtensions are the extensions scoped as AdvPL for rule language
// matching. ReviewExtensions are the ones actually submitted to review;
// ProjectExtensions bound what counts as a project file at all.
var (
	SourceExtensions  = []string{".prw", ".prx", ".ch"}
	ReviewExtensions  = []string{".prw"}
	ProjectExtensions = []string{".prw", ".prx", ".prg"}
)

func HasExtension(path string, extensions []string) bool {
	lower := strings.ToLower(path)
	for _, ext := range extensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

func IsSource(path string) bool {
	return HasExtension(path, SourceExtensions)
}

var (
	routineRE      = regexp.MustCompile(`(?i)^\s*(user\s+function|static\s+function|static\s+procedure|class)\s+([A-Za-z_][A-Za-z0-9_]*)`)
	docMarkerRE    = regexp.MustCompile(`(?i)\{\s*protheus\.doc\s*\}`)
	classRE        = regexp.MustCompile(`(?i)\bClass\b`)
	userFunctionRE = regexp.MustCompile(`(?i)^\s*User\s+Function\s+`)
	sqlKeywordRE   = regexp.MustCompile(`(?i)\b(select|insert|update|delete|merge)\b`)

	staticFunctionREs = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^\s*Static\s+Function\s+\w+`),
		regexp.MustCompile(`(?i)^\s*Static\s+Func\s+\w+`),
	}

	staticVariableREs = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^\s*Static\s+\w+\s*:=`),
		regexp.MustCompile(`(?i)^\s*Static\s+\w+\s*$`),
		regexp.MustCompile(`(?i)^\s*Static\s+\w+\s*,`),
		regexp.MustCompile(`(?i)^\s*Static\s+\w+\s+[Aa][Ss]\s+`),
	}
)

type Routine struct {
	Kind string
	Name string
}

// ExtractRoutine recognizes the declaration keywords that open a routine or
// type: User Function, Static Function, Static Procedure and Class.
func ExtractRoutine(line string) *Routine {
	m := routineRE.FindStringSubmatch(line)
	if m == nil {
		return nil
	}

	return &Routine{Kind: titleCase(m[1]), Name: m[2]}
}

func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func HasDocMarker(line string) bool {
	return docMarkerRE.MatchString(line)
}

func DeclaresClass(line string) bool {
	return classRE.MatchString(line)
}

func DeclaresUserFunction(line string) bool {
	return userFunctionRE.MatchString(line)
}

// IsStaticFunctionDecl matches Static Function / Static Func declarations,
// tolerant to repeated spacing. These are always exempt from the
// restricted-scope variable rule.
func IsStaticFunctionDecl(line string) bool {
	for _, re := range staticFunctionREs {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

// IsStaticVariableDecl matches file-scope Static variable declarations:
// assignment, bare declaration, comma-separated list or explicit type
// annotation. A Static Function declaration never matches.
func IsStaticVariableDecl(line string) bool {
	if IsStaticFunctionDecl(line) {
		return false
	}

	for _, re := range staticVariableREs {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

// DetectLanguage sniffs the language of a single line. SQL embedded in
// AdvPL sources is the only non-default case.
func DetectLanguage(line string) string {
	if sqlKeywordRE.MatchString(line) {
		return "sql"
	}
	return "advpl"
}

// IdentifierScanner finds declared identifiers whose name is at least
// minLen characters long.
type IdentifierScanner struct {
	re *regexp.Regexp
}

func NewIdentifierScanner(minLen int) *IdentifierScanner {
	if minLen < 2 {
		minLen = 2
	}
	return &IdentifierScanner{
		re: regexp.MustCompile(fmt.Sprintf(`(?i)\b(Local|Private|Public|Static)\s+([A-Za-z][A-Za-z0-9_]{%d,})\b`, minLen-1)),
	}
}

func (s *IdentifierScanner) Find(line string) []string {
	var result []string
	for _, m := range s.re.FindAllStringSubmatch(line, -1) {
		result = append(result, m[2])
	}
	return result
}
