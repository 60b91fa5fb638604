/*
Package dsl provides a Go DSL for programmatically constructing machine definitions.

It is the fluent, type-checked alternative to writing YAML or JSON definition files.
The result is a *definition.Definition, so it can be registered in a
memory.Source, exported with definition.Marshal or built into a machine directly.

Example usage:

	b := dsl.New("complement").
		Describe("Flip every bit").
		Start("q0").
		Halt("qf")

	b.State("q0").On("0").Write("1").Right().Goto("q0")
	b.State("q0").On("1").Write("0").Right().Goto("q0")
	b.State("q0").On(" ").Stay().Goto("qf")

	def, err := b.Build()
	if err != nil {
		return err
	}
	m, err := def.Build(domain.Symbols("101"))
*/
package dsl
