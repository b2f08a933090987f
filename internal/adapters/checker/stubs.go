package checker

// stubModules maps import specifiers to the declaration stubs written into
// the throwaway workspace, so artifacts type-check without a real
// node_modules tree. The surface covers what generated Angular code
// commonly touches; anything beyond it falls under the lenient codes.
var stubModules = map[string]string{
	"@angular/core": `export interface OnInit {
    ngOnInit(): void;
}
export interface OnDestroy {
    ngOnDestroy(): void;
}
export declare const Component: (meta: {
    selector?: string;
    template?: string;
    templateUrl?: string;
    styleUrls?: string[];
    changeDetection?: any;
}) => ClassDecorator;
export declare const Injectable: (meta?: { providedIn?: string }) => ClassDecorator;
export declare const Input: () => PropertyDecorator;
export declare const Output: () => PropertyDecorator;
export declare class EventEmitter<T> {
    emit(value?: T): void;
    subscribe(next?: (value: T) => void): { unsubscribe: () => void };
}
export declare class ChangeDetectorRef {
    markForCheck(): void;
    detectChanges(): void;
}
export declare enum ChangeDetectionStrategy {
    OnPush = 1,
    Default = 0
}
`,

	"@angular/forms": `import { Observable } from "rxjs";

export interface AbstractControl<T = any> {
    value: T;
    valid: boolean;
    invalid: boolean;
    errors: { [key: string]: any } | null;
    touched: boolean;
    untouched: boolean;
    dirty: boolean;
    pristine: boolean;
    valueChanges: Observable<T>;
    markAsTouched(): void;
    markAsUntouched(): void;
    markAsDirty(): void;
    markAsPristine(): void;
    setErrors(errors: { [key: string]: any } | null): void;
    setValidators(validators: any): void;
    updateValueAndValidity(): void;
}
export declare class FormControl<T = any> implements AbstractControl<T> {
    constructor(value?: T, validators?: any);
    value: T;
    valid: boolean;
    invalid: boolean;
    errors: { [key: string]: any } | null;
    touched: boolean;
    untouched: boolean;
    dirty: boolean;
    pristine: boolean;
    valueChanges: Observable<T>;
    setValue(value: T): void;
    patchValue(value: Partial<T>): void;
    reset(): void;
    markAsTouched(): void;
    markAsUntouched(): void;
    markAsDirty(): void;
    markAsPristine(): void;
    setErrors(errors: { [key: string]: any } | null): void;
    setValidators(validators: any): void;
    updateValueAndValidity(): void;
}
export declare class FormGroup<T = any> implements AbstractControl<T> {
    constructor(controls: { [K in keyof T]: AbstractControl<T[K]> });
    value: T;
    valid: boolean;
    invalid: boolean;
    errors: { [key: string]: any } | null;
    touched: boolean;
    untouched: boolean;
    dirty: boolean;
    pristine: boolean;
    valueChanges: Observable<T>;
    controls: { [K in keyof T]: AbstractControl<T[K]> };
    get<K extends keyof T>(path: K): AbstractControl<T[K]> | null;
    setValue(value: T): void;
    patchValue(value: Partial<T>): void;
    reset(): void;
    markAsTouched(): void;
    markAsUntouched(): void;
    markAsDirty(): void;
    markAsPristine(): void;
    markAllAsTouched(): void;
    setErrors(errors: { [key: string]: any } | null): void;
    setValidators(validators: any): void;
    updateValueAndValidity(): void;
}
export declare class FormBuilder {
    group<T>(config: { [K in keyof T]: any }): FormGroup<T>;
    control<T>(value?: T, validators?: any): FormControl<T>;
}
export declare class Validators {
    static required(control: AbstractControl): { [key: string]: any } | null;
    static email(control: AbstractControl): { [key: string]: any } | null;
    static minLength(length: number): (control: AbstractControl) => { [key: string]: any } | null;
    static maxLength(length: number): (control: AbstractControl) => { [key: string]: any } | null;
}
`,

	"@angular/router": `export interface ActivatedRoute {
    params: any;
    queryParams: any;
    data: any;
}
export declare class Router {
    navigate(commands: any[], extras?: {
        relativeTo?: ActivatedRoute;
        queryParams?: { [key: string]: any };
        queryParamsHandling?: 'merge' | 'preserve' | '';
        preserveFragment?: boolean;
        skipLocationChange?: boolean;
        replaceUrl?: boolean;
        state?: { [key: string]: any };
    }): Promise<boolean>;
    navigateByUrl(url: string, extras?: {
        skipLocationChange?: boolean;
        replaceUrl?: boolean;
        state?: { [key: string]: any };
    }): Promise<boolean>;
}
`,

	"rxjs": `export type TeardownLogic = Subscription | (() => void) | void;

export interface Observer<T> {
    next: (value: T) => void;
    error: (err: any) => void;
    complete: () => void;
}
export interface Subscription {
    unsubscribe(): void;
    add(teardown: TeardownLogic): Subscription;
    closed: boolean;
}
export declare const Subscription: {
    new (): Subscription;
    prototype: Subscription;
};
export interface Observable<T> {
    subscribe(observer: Partial<Observer<T>>): Subscription;
    subscribe(next?: (value: T) => void, error?: (error: any) => void, complete?: () => void): Subscription;
    pipe(...operators: any[]): Observable<any>;
}
export declare class Subject<T> implements Observable<T> {
    subscribe(observer: Partial<Observer<T>>): Subscription;
    subscribe(next?: (value: T) => void, error?: (error: any) => void, complete?: () => void): Subscription;
    pipe(...operators: any[]): Observable<any>;
    next(value: T): void;
    error(err: any): void;
    complete(): void;
}
export declare class BehaviorSubject<T> extends Subject<T> {
    constructor(value: T);
    getValue(): T;
}
export declare function of<T>(...args: T[]): Observable<T>;
export declare function from<T>(input: any): Observable<T>;
export declare function timer(delay: number): Observable<number>;
export declare function interval(period: number): Observable<number>;
export declare function throwError(error: any): Observable<never>;
export declare function firstValueFrom<T>(source: Observable<T>): Promise<T>;
`,
}
