package turing

// Version is the release of the library and its command-line tool.
const Version = "0.3.0"
