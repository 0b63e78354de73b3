package snowflake

type Snowflake interface {
	// GenerateString returns the next ID in base32 form, short enough for
	// headers and log fields.
	GenerateString() string
}
