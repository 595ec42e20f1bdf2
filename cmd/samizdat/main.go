package main

import (
	"fmt"
	"os"

	"github.com/danfuzz/samizdat-sub000"
	"github.com/spf13/cobra"
)

var gcStatsAllocCount int

func main() {
	var rootCmd = &cobra.Command{
		Use:   "samizdat",
		Short: "A host embedding demo for the Samizdat interpreter core",
		Long:  "Evaluates hand-built executable nodes against the Samizdat core runtime",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}

	var runCmd = &cobra.Command{
		Use:   "run",
		Short: "Evaluate a built-in demo closure and print the result",
		Run:   runDemo,
	}

	var gcStatsCmd = &cobra.Command{
		Use:   "gc-stats",
		Short: "Allocate throwaway values and report heap occupancy before/after a forced collection",
		Run:   gcStats,
	}
	gcStatsCmd.Flags().IntVarP(&gcStatsAllocCount, "count", "n", 5000, "number of throwaway lists to allocate")

	rootCmd.AddCommand(runCmd, gcStatsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// runDemo builds the identity-closure shape from the core's own test
// scenarios — `@closure{formals=[{name=x}], yield=@varRef(x)}` applied to
// a single Int — and prints the result, exercising Translate/Eval/Call
// end to end.
func runDemo(cmd *cobra.Command, args []string) {
	samizdat.Bootstrap()

	xName := samizdat.SymbolFromString("x")
	formalRec := samizdat.MakeRecord(samizdat.SymbolFromString("formal"),
		samizdat.SymbolTableFromArray([]*samizdat.Symbol{samizdat.SymbolFromString("name")}, []samizdat.Value{xName}))

	closureRec := samizdat.MakeRecord(samizdat.SymbolFromString("closure"),
		samizdat.SymbolTableFromArray(
			[]*samizdat.Symbol{
				samizdat.SymbolFromString("formals"),
				samizdat.SymbolFromString("statements"),
				samizdat.SymbolFromString("yield"),
			},
			[]samizdat.Value{
				samizdat.ListFromArray([]samizdat.Value{formalRec}),
				samizdat.ListFromArray(nil),
				samizdat.MakeRecord(samizdat.SymbolFromString("varRef"),
					samizdat.SymbolTableFromArray([]*samizdat.Symbol{samizdat.SymbolFromString("name")}, []samizdat.Value{xName})),
			}))

	node := samizdat.Translate(closureRec)
	closureVal := samizdat.Eval(nil, node)

	result := samizdat.Call(closureVal, []samizdat.Value{samizdat.IntFromZint(5)})
	fmt.Println(samizdat.DebugString(result))
}

// gcStats forces a collection before and after allocating a batch of
// throwaway lists, demonstrating the mark-sweep liveness property from
// the core's own test scenario F.
func gcStats(cmd *cobra.Command, args []string) {
	samizdat.Bootstrap()

	samizdat.CollectGarbage()
	fmt.Printf("before: live=%d immortal=%d\n", samizdat.LiveCount(), samizdat.ImmortalCount())

	saved := samizdat.FrameStart()
	var keep samizdat.Value
	for i := 0; i < gcStatsAllocCount; i++ {
		v := samizdat.ListFromArray([]samizdat.Value{samizdat.IntFromZint(int64(i))})
		if i == gcStatsAllocCount-1 {
			keep = v
		}
	}
	samizdat.FrameReturn(saved, keep)

	samizdat.CollectGarbage()
	fmt.Printf("after:  live=%d immortal=%d\n", samizdat.LiveCount(), samizdat.ImmortalCount())
}
