// Package vision is the boundary between the application and its image
// detectors.
//
// A caller asks for one Kind of detection over one image. Service routes
// the request to the Backend registered for that kind, then applies the
// kind's Policy: a strict minimum confidence, optional ordering by
// confidence and an optional cap on the number of observations.
//
// Every failure comes back as a *ServiceError. Callers do not retry; Report
// turns the outcome, success or failure, into the text shown to the user.
//
// Session holds the currently selected image and the last result. Selecting
// a new image clears the previous result, so the most recent input wins.
package vision
