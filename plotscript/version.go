package plotscript

import "fmt"

// set with -ldflags "-X github.com/glycerine/plotscript/plotscript.GITLASTTAG=..."
var (
	GITLASTTAG    string
	GITLASTCOMMIT string
)

func Version() string {
	if GITLASTTAG == "" {
		return "dev"
	}
	if GITLASTCOMMIT == "" {
		return GITLASTTAG
	}
	return fmt.Sprintf("%s/%s", GITLASTTAG, GITLASTCOMMIT)
}
