package workflows

import "kyc-verification-workflow/activities"

// a is the activities struct used by workflows to reference activity methods.
// The actual struct is registered with the worker; this variable only
// provides method references for workflow.ExecuteActivity calls.
var a *activities.Activities
