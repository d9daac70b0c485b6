/*
Package quantflow assembles the work-node catalog pipeline of the PandaAI
QuantFlow platform: a registry of node descriptors, a loader that discovers
plugin units under configured directories, and a catalog service that
renders the registry as the nested group tree consumed by the visual
workflow editor.

The pipeline is explicit rather than global: New constructs a registry,
wires the loader and catalog service around it, and performs the startup
load. Multiple independent pipelines can coexist, which keeps tests
isolated.

	app, report := quantflow.New(context.Background(), []string{"./plugins"})
	if report.Failed > 0 {
		// Broken units were skipped; the rest of the catalog still loaded.
	}
	tree := app.Catalog()

Workflow execution, backtesting, and persistence are separate subsystems;
this module only builds and serves the catalog they draw nodes from.
*/
package quantflow
