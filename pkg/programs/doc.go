/*
Package programs contains ready-made transition tables.

Each program is configuration data: it only populates a machine through the public
SetTransition contract. Programs are also reachable by name through the registry,
which is what the CLI, the HTTP API and the MCP server list and run.
*/
package programs
