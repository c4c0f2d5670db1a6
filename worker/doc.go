// Package worker decodes batches of code values in parallel.
//
// Example usage:
//
//	bd := worker.NewBatchDecoder(binder, 4)
//	result := bd.DecodeBatch(ctx, wires)
//	for _, r := range result.Results {
//	    if r.Error != nil {
//	        // Handle rejected value
//	    }
//	}
//
// Results are returned in input order whatever the number of workers.
package worker
