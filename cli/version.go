package cli

import "fmt"

var (
	// BuildTag set at build time, empty if not a tagged version
	BuildTag string
	// BuildTime set at build time
	BuildTime string
	// BuildSHA set at build time
	BuildSHA string
)

type version struct {
	tag  string
	time string
	sha  string
}

func getVersion() *version {
	tag := BuildTag
	if tag == `` {
		tag = `dirty`
	}
	return &version{tag: tag, time: BuildTime, sha: BuildSHA}
}

// String returns the tag followed by the abbreviated Git SHA and the build time when they are known
func (v *version) String() string {
	s := v.tag
	if v.sha != `` {
		sha := v.sha
		if len(sha) > 7 {
			sha = sha[:7]
		}
		s = fmt.Sprintf(`%s (%s)`, s, sha)
	}
	if v.time != `` {
		s += ` built ` + v.time
	}
	return s
}
