// Command olsbench runs a built-in catalogue of micro-benchmarks and prints
// the fitted cost of each.
//
//	olsbench list
//	olsbench run --budget 2s --filter '^hash/'
//	olsbench run --config olsbench.yaml --format json
package main

func main() {
	Execute()
}
