// Package installvolatility assembles the full provisioning pipeline:
// dependencies, toolkit source, launcher, verification.
package installvolatility

import (
	"io"

	"github.com/cloudenochcsis/Volatility-Script/module/dependencies"
	"github.com/cloudenochcsis/Volatility-Script/module/toolkit"
	"github.com/cloudenochcsis/Volatility-Script/module/verification"
	"github.com/cloudenochcsis/Volatility-Script/module/wrapping"
	"github.com/cloudenochcsis/Volatility-Script/pipeline"
)

const PipelineName = "install-volatility"

type InstallPipeline struct {
	pipeline.BasePipeline
}

// NewInstallPipeline wires the four provisioning phases in order. depsLog
// receives the raw output of package installers and the clone.
func NewInstallPipeline(depsLog io.Writer) *InstallPipeline {
	p := &InstallPipeline{
		BasePipeline: pipeline.NewBasePipeline(
			PipelineName,
			"provision the Volatility 2 toolkit onto this host"),
	}
	p.AddModule(dependencies.NewDependenciesModule(depsLog))
	p.AddModule(toolkit.NewToolkitModule(depsLog))
	p.AddModule(wrapping.NewWrappingModule())
	p.AddModule(verification.NewVerificationModule())
	return p
}
