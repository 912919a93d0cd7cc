package noml

// Version is the library and CLI's semantic version.
const Version = "0.1.0"
