package explore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	gomock "github.com/golang/mock/gomock"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/scale-cnn/explorer/layer"
)

var _ = Describe("Explorer", func() {
	var (
		mockCtrl *gomock.Controller
		synth    *MockSynthesizer
		explorer *Explorer
		out      *bytes.Buffer
		spec     layer.Spec
		workDir  string
		listPath string
	)

	// newVariantDir lays out an implementation directory whose reports were
	// already archived by a previous run, so Analyze skips the archive step.
	newVariantDir := func(name string) string {
		dir := filepath.Join(workDir, name)
		reportDir := filepath.Join(dir, "report")
		Expect(os.MkdirAll(reportDir, 0o755)).To(Succeed())
		Expect(os.WriteFile(filepath.Join(reportDir, dataflowReportName),
			[]byte(testDataflowRpt), 0o644)).To(Succeed())
		Expect(os.WriteFile(filepath.Join(reportDir, "tdf1_top_csynth.xml"),
			[]byte(testTopLevelXML), 0o644)).To(Succeed())
		return dir
	}

	writeList := func(variants ...layer.Variant) {
		var buf bytes.Buffer
		for _, v := range variants {
			fmt.Fprintf(&buf,
				`{"name": %q, "dir": %q, "ochan_scale_factor": %d, "read_scale_factor": %d}`+"\n",
				v.Name, v.Dir, v.OchanScaleFactor, v.ReadScaleFactor)
		}
		Expect(os.WriteFile(listPath, buf.Bytes(), 0o644)).To(Succeed())
	}

	summaryPaths := func() (string, string) {
		base := filepath.Join(workDir, "tdf1_implementations_summary")
		return base + ".csv", base + ".txt"
	}

	expectNoOutput := func() {
		csvPath, txtPath := summaryPaths()
		Expect(csvPath).NotTo(BeAnExistingFile())
		Expect(txtPath).NotTo(BeAnExistingFile())
	}

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		synth = NewMockSynthesizer(mockCtrl)
		out = &bytes.Buffer{}
		explorer = &Explorer{Synth: synth, Out: out}
		spec = layer.Spec{LayerName: "tdf1", OutputHeight: 8, OutputWidth: 8, OutputChans: 4}
		workDir = GinkgoT().TempDir()
		listPath = filepath.Join(workDir, "tdf1_impls.txt")
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("synthesizes and summarizes every implementation in list order", func() {
		dir1 := newVariantDir("r1_o1")
		dir2 := newVariantDir("r2_o2")
		writeList(
			layer.Variant{Name: "r1_o1", Dir: dir1, OchanScaleFactor: 1, ReadScaleFactor: 1},
			layer.Variant{Name: "r2_o2", Dir: dir2, OchanScaleFactor: 2, ReadScaleFactor: 2},
		)

		gomock.InOrder(
			synth.EXPECT().Synthesize(gomock.Any(), "tdf1", dir1).Return(nil),
			synth.EXPECT().Synthesize(gomock.Any(), "tdf1", dir2).Return(nil),
		)

		Expect(explorer.Run(context.Background(), spec, listPath)).To(Succeed())

		csvPath, txtPath := summaryPaths()
		csvData, err := os.ReadFile(csvPath)
		Expect(err).NotTo(HaveOccurred())
		lines := strings.Split(strings.TrimRight(string(csvData), "\n"), "\n")
		Expect(lines).To(HaveLen(3))
		Expect(lines[0]).To(Equal("ImplementationDir,Latency,Cost"))
		Expect(lines[1]).To(HavePrefix(dir1 + ","))
		Expect(lines[2]).To(HavePrefix(dir2 + ","))

		narrative, err := os.ReadFile(txtPath)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(narrative)).To(ContainSubstring("Implementation: r1_o1"))
		Expect(string(narrative)).To(ContainSubstring("Implementation: r2_o2"))

		Expect(out.String()).To(ContainSubstring("Synthesis results for tdf1 layer implementations"))
		Expect(out.String()).To(ContainSubstring("Generated CSV summary at " + csvPath))
	})

	It("fails before synthesis when an implementation directory is missing", func() {
		writeList(layer.Variant{
			Name: "ghost", Dir: filepath.Join(workDir, "ghost"),
			OchanScaleFactor: 1, ReadScaleFactor: 1,
		})

		err := explorer.Run(context.Background(), spec, listPath)

		var cfgErr *ConfigError
		Expect(errors.As(err, &cfgErr)).To(BeTrue())
		expectNoOutput()
	})

	It("aborts the batch and surfaces the exit code when synthesis fails", func() {
		dir1 := newVariantDir("r1_o1")
		dir2 := newVariantDir("r2_o2")
		writeList(
			layer.Variant{Name: "r1_o1", Dir: dir1, OchanScaleFactor: 1, ReadScaleFactor: 1},
			layer.Variant{Name: "r2_o2", Dir: dir2, OchanScaleFactor: 2, ReadScaleFactor: 2},
		)

		synth.EXPECT().Synthesize(gomock.Any(), "tdf1", dir1).
			Return(&ToolError{Dir: dir1, ExitCode: 3})

		err := explorer.Run(context.Background(), spec, listPath)

		var toolErr *ToolError
		Expect(errors.As(err, &toolErr)).To(BeTrue())
		Expect(toolErr.ExitCode).To(Equal(3))
		Expect(toolErr.Dir).To(Equal(dir1))
		expectNoOutput()
	})

	It("produces no output files when any variant's reports are missing", func() {
		dir1 := newVariantDir("r1_o1")
		dir2 := filepath.Join(workDir, "r2_o2")
		Expect(os.MkdirAll(dir2, 0o755)).To(Succeed())
		writeList(
			layer.Variant{Name: "r1_o1", Dir: dir1, OchanScaleFactor: 1, ReadScaleFactor: 1},
			layer.Variant{Name: "r2_o2", Dir: dir2, OchanScaleFactor: 2, ReadScaleFactor: 2},
		)

		gomock.InOrder(
			synth.EXPECT().Synthesize(gomock.Any(), "tdf1", dir1).Return(nil),
			synth.EXPECT().Synthesize(gomock.Any(), "tdf1", dir2).Return(nil),
		)

		err := explorer.Run(context.Background(), spec, listPath)

		var missing *MissingArtifactError
		Expect(errors.As(err, &missing)).To(BeTrue())
		expectNoOutput()
	})

	It("fails the whole run on a malformed variant list", func() {
		Expect(os.WriteFile(listPath, []byte("{'not': json}\n"), 0o644)).To(Succeed())

		err := explorer.Run(context.Background(), spec, listPath)

		var perr *layer.ParseError
		Expect(errors.As(err, &perr)).To(BeTrue())
		expectNoOutput()
	})
})
