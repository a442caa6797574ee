package version

// AssetIndex maps logical asset names to content-addressed objects.
type AssetIndex struct {
	Objects map[string]AssetObject `json:"objects"`
}

type AssetObject struct {
	Hash string `json:"hash"`
	Size int64  `json:"size"`
}

// RelativePath is where the object lives under objects/: <hash[0:2]>/<hash>.
func (a AssetObject) RelativePath() string {
	return a.Hash[:2] + "/" + a.Hash
}

func (a AssetObject) Valid() bool {
	return len(a.Hash) > 2
}
