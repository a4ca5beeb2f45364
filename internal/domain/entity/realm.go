package entity

// ConnectedRealm is one auction-house group: several realm slugs share a
// single marketplace.
type ConnectedRealm struct {
	ID     int64
	Region string
	Realms []string
}
