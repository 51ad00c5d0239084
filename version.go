package term

// Version of the term engine, reported by the CLI.
const Version = "0.3.0"
