/*
Package runner feeds line oriented input into an automata machine.

Each input line is sanitized, turned into a message by an automata.Processor
and handed to the machine. Every instance returned by a round is passed to a
Reporter as a Report describing the path that led to it.

# Usage

	r := runner.New(machine,
		runner.WithReporter(runner.NewJSONReporter(os.Stdout)),
		runner.WithLogger(logger),
	)

	stats, err := r.Run(ctx, os.Stdin)
	if err != nil {
		log.Fatal(err)
	}
*/
package runner
