package version

import (
	"fmt"
	"strings"

	"github.com/mrnavastar/mclaunch/util"
)

// Coordinate is a parsed maven name, group:artifact:version[:classifier][@extension].
type Coordinate struct {
	Group      string
	Artifact   string
	Version    string
	Classifier string
	Extension  string
}

func ParseCoordinate(name string) (Coordinate, error) {
	c := Coordinate{Extension: "jar"}

	if at := strings.LastIndex(name, "@"); at >= 0 {
		c.Extension = name[at+1:]
		name = name[:at]
	}

	parts := strings.Split(name, ":")
	if len(parts) < 3 || len(parts) > 4 {
		return Coordinate{}, fmt.Errorf("%w: %q is not a maven coordinate", util.ErrMissingArtifactPath, name)
	}
	for _, p := range parts {
		if p == "" {
			return Coordinate{}, fmt.Errorf("%w: %q is not a maven coordinate", util.ErrMissingArtifactPath, name)
		}
	}

	c.Group, c.Artifact, c.Version = parts[0], parts[1], parts[2]
	if len(parts) == 4 {
		c.Classifier = parts[3]
	}
	return c, nil
}

// Path is the repository-relative path of the artifact, slash separated.
func (c Coordinate) Path() string {
	file := c.Artifact + "-" + c.Version
	if c.Classifier != "" {
		file += "-" + c.Classifier
	}
	file += "." + c.Extension

	return strings.Join([]string{
		strings.ReplaceAll(c.Group, ".", "/"),
		c.Artifact,
		c.Version,
		file,
	}, "/")
}
